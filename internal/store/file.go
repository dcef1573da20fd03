package store

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"deliverytrack/internal/apperr"
)

// I/O against a data file is retried a few times before the operation is
// declared corrupt; the file may be transiently locked by a concurrently
// flushing writer.
const (
	ioAttempts = 3
	ioDelay    = 100 * time.Millisecond
)

// Every File instance pointing at the same path must share one lock, since
// each operation is a read-entire-file / mutate / write-entire-file cycle.
var (
	fileLocksMu sync.Mutex
	fileLocks   = map[string]*sync.Mutex{}
)

func lockFor(path string) *sync.Mutex {
	fileLocksMu.Lock()
	defer fileLocksMu.Unlock()

	if l, ok := fileLocks[path]; ok {
		return l
	}
	l := &sync.Mutex{}
	fileLocks[path] = l
	return l
}

// File is the durable engine: one JSON file per entity kind. The id counter
// is kept inside the file so it survives process restarts.
type File[T Record[T]] struct {
	kind string
	path string
	mu   *sync.Mutex
}

func NewFile[T Record[T]](kind, path string) *File[T] {
	return &File[T]{kind: kind, path: path, mu: lockFor(path)}
}

type fileData[T any] struct {
	NextID int `json:"next_id"`
	Items  []T `json:"items"`
}

func readFileRetry(path string) ([]byte, error) {
	var lastErr error
	for i := 0; i < ioAttempts; i++ {
		raw, err := os.ReadFile(path)
		if err == nil || os.IsNotExist(err) {
			return raw, err
		}
		lastErr = err
		time.Sleep(ioDelay)
	}
	return nil, apperr.Corrupted("read %s: %v", path, lastErr)
}

func writeFileRetry(path string, raw []byte) error {
	var lastErr error
	for i := 0; i < ioAttempts; i++ {
		if err := os.WriteFile(path, raw, 0o644); err == nil {
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(ioDelay)
	}
	return apperr.Corrupted("write %s: %v", path, lastErr)
}

func (f *File[T]) load() (fileData[T], error) {
	data := fileData[T]{NextID: startID}

	raw, err := readFileRetry(f.path)
	if os.IsNotExist(err) {
		return data, nil
	}
	if err != nil {
		return data, err
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, apperr.Corrupted("decode %s: %v", f.path, err)
	}
	if data.NextID < startID {
		data.NextID = startID
	}
	return data, nil
}

func (f *File[T]) save(data fileData[T]) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return apperr.Corrupted("encode %s: %v", f.path, err)
	}
	return writeFileRetry(f.path, raw)
}

func (f *File[T]) Create(item T) (T, error) {
	var zero T

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return zero, err
	}

	if item.Key() == 0 {
		item = item.WithKey(data.NextID)
		data.NextID++
	} else {
		for _, it := range data.Items {
			if it.Key() == item.Key() {
				return zero, apperr.AlreadyExists("%s %d", f.kind, item.Key())
			}
		}
		if item.Key() >= data.NextID {
			data.NextID = item.Key() + 1
		}
	}

	data.Items = append(data.Items, item)
	if err := f.save(data); err != nil {
		return zero, err
	}
	return item, nil
}

func (f *File[T]) Get(id int) (T, error) {
	var zero T

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return zero, err
	}
	for _, it := range data.Items {
		if it.Key() == id {
			return it, nil
		}
	}
	return zero, apperr.NotFound("%s %d", f.kind, id)
}

func (f *File[T]) First(pred func(T) bool) (T, error) {
	var zero T

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return zero, err
	}
	for _, it := range data.Items {
		if pred == nil || pred(it) {
			return it, nil
		}
	}
	return zero, apperr.NotFound("no %s matches the filter", f.kind)
}

func (f *File[T]) List(pred func(T) bool) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(data.Items))
	for _, it := range data.Items {
		if pred == nil || pred(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *File[T]) Update(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	for i, it := range data.Items {
		if it.Key() == item.Key() {
			data.Items[i] = item
			return f.save(data)
		}
	}
	return apperr.NotFound("%s %d", f.kind, item.Key())
}

func (f *File[T]) Delete(id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	for i, it := range data.Items {
		if it.Key() == id {
			data.Items = append(data.Items[:i], data.Items[i+1:]...)
			return f.save(data)
		}
	}
	return apperr.NotFound("%s %d", f.kind, id)
}

func (f *File[T]) DeleteAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}
	data.Items = nil
	return f.save(data)
}
