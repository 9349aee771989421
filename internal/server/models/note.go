package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTag — метка заметки, если клиент её не передал.
const DefaultTag = "General"

// Note — заметка, принадлежащая одному пользователю.
// OwnerID задаётся при создании и больше не меняется.
type Note struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Tag         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NotePatch — частичное обновление заметки. nil-поле не изменяется.
type NotePatch struct {
	Title       *string
	Description *string
	Tag         *string
}

// Empty сообщает, что обновлять нечего.
func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Tag == nil
}
