package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/tournament-platform/models"
	"github.com/Dosada05/tournament-platform/storage"
)

// ErrStorage оборачивает любую неудачную запись коллекции: изменение не сохранено.
var ErrStorage = errors.New("storage failure")

var errCorruptDocument = errors.New("collection document is not a JSON array")

type Entity interface {
	EntityID() models.ID
}

// Collection - хранилище одной коллекции сущностей. Чтение и запись всегда
// целиком: изменение загружает всю коллекцию, меняет её в памяти и записывает
// обратно через ReplaceAll.
type Collection[T Entity] interface {
	// GetAll никогда не возвращает ошибку: отсутствующий или повреждённый
	// документ логируется и читается как пустая коллекция. Отдельные
	// неразбираемые записи пропускаются, остальные возвращаются.
	GetAll(ctx context.Context) []T
	FindByID(ctx context.Context, id models.ID) (T, bool)
	ReplaceAll(ctx context.Context, items []T) error

	// Lock захватывает мьютекс коллекции на весь цикл чтение-изменение-запись.
	// Несколько коллекций блокируются в порядке teams, tournaments, matches.
	Lock() (unlock func())

	// Init создаёт пустой документ, если его ещё нет.
	Init(ctx context.Context) error
}

type documentCollection[T Entity] struct {
	store  storage.DocumentStore
	name   string
	logger *slog.Logger
	mu     sync.Mutex
}

func newDocumentCollection[T Entity](store storage.DocumentStore, name string, logger *slog.Logger) *documentCollection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentCollection[T]{
		store:  store,
		name:   name,
		logger: logger.With(slog.String("collection", name)),
	}
}

func (c *documentCollection[T]) GetAll(ctx context.Context) []T {
	items, _, err := c.load(ctx)
	if err != nil {
		return []T{}
	}
	return items
}

func (c *documentCollection[T]) FindByID(ctx context.Context, id models.ID) (T, bool) {
	for _, item := range c.GetAll(ctx) {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// ReplaceAll записывает items вместо текущих записей. Записи документа, которые
// не удалось разобрать, дописываются в конец без изменений. Если документ
// существует, но не читается или не является массивом, запись не выполняется.
func (c *documentCollection[T]) ReplaceAll(ctx context.Context, items []T) error {
	_, kept, err := c.load(ctx)
	if err != nil && !errors.Is(err, storage.ErrDocumentNotFound) {
		return fmt.Errorf("%w: refusing to overwrite unreadable %s: %w", ErrStorage, c.name, err)
	}

	out := make([]any, 0, len(items)+len(kept))
	for _, item := range items {
		out = append(out, item)
	}
	for _, raw := range kept {
		out = append(out, raw)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrStorage, c.name, err)
	}
	if err := c.store.Write(ctx, c.name, data); err != nil {
		c.logger.ErrorContext(ctx, "failed to write collection", slog.Any("error", err))
		return fmt.Errorf("%w: write %s: %w", ErrStorage, c.name, err)
	}
	return nil
}

func (c *documentCollection[T]) Lock() func() {
	c.mu.Lock()
	return c.mu.Unlock
}

func (c *documentCollection[T]) Init(ctx context.Context) error {
	_, err := c.store.Read(ctx, c.name)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrDocumentNotFound):
		c.logger.InfoContext(ctx, "initializing empty collection")
		if err := c.store.Write(ctx, c.name, []byte("[]")); err != nil {
			return fmt.Errorf("%w: init %s: %w", ErrStorage, c.name, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: init %s: %w", ErrStorage, c.name, err)
	}
}

// Raw возвращает документ в том виде, в каком он хранится.
func (c *documentCollection[T]) Raw(ctx context.Context) []byte {
	data, err := c.read(ctx)
	if err != nil {
		return []byte("[]")
	}
	return data
}

// load разбирает документ по записям. Записи, которые не удалось разобрать,
// возвращаются в kept как есть, чтобы ReplaceAll их не потерял.
func (c *documentCollection[T]) load(ctx context.Context) (items []T, kept []json.RawMessage, err error) {
	data, err := c.read(ctx)
	if err != nil {
		return nil, nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		c.logger.ErrorContext(ctx, "collection document is corrupt, treating as empty", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%w: %w", errCorruptDocument, err)
	}

	items = make([]T, 0, len(records))
	for i, raw := range records {
		var item T
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			c.logger.WarnContext(ctx, "skipping null record", slog.Int("index", i))
			kept = append(kept, raw)
			continue
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			c.logger.WarnContext(ctx, "skipping undecodable record", slog.Int("index", i), slog.Any("error", err))
			kept = append(kept, raw)
			continue
		}
		items = append(items, item)
	}
	return items, kept, nil
}

func (c *documentCollection[T]) read(ctx context.Context) ([]byte, error) {
	data, err := c.store.Read(ctx, c.name)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			c.logger.WarnContext(ctx, "collection document missing, treating as empty")
		} else {
			c.logger.ErrorContext(ctx, "failed to read collection, treating as empty", slog.Any("error", err))
		}
		return nil, err
	}
	return data, nil
}
