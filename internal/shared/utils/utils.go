// Утилитарные функции общего назначения
package utils

import "strings"

func Ptr[T any](v T) *T {
	return &v
}

// NonEmpty возвращает указатель на обрезанную строку или nil, если строка пустая.
// Используется для частичных обновлений: nil означает «не менять».
func NonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
