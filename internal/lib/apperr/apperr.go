// Package apperr определяет единую таксономию ошибок уровня бизнес-логики.
//
// Каждая ошибка несёт Kind — категорию, по которой на границе HTTP
// выбирается статус ответа, и публичное сообщение, безопасное для клиента.
// Внутренние детали (обёрнутая ошибка) остаются только в логах.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind — категория ошибки бизнес-логики.
type Kind int

const (
	// KindValidation — некорректный или неполный ввод, исправляется клиентом.
	KindValidation Kind = iota
	// KindNotFound — запрошенная сущность отсутствует.
	KindNotFound
	// KindConflict — нарушение бизнес-правила, например пересечение подписок.
	KindConflict
	// KindUnauthorized — неверные учетные данные или отсутствие прав.
	KindUnauthorized
	// KindInternal — непредвиденная ошибка хранилища или среды выполнения.
	KindInternal
)

// Error — ошибка с категорией и публичным сообщением.
type Error struct {
	Kind Kind   // Категория ошибки
	Msg  string // Сообщение, пригодное для показа клиенту
	Err  error  // Внутренняя причина, не раскрывается клиенту
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New создает ошибку заданной категории с публичным сообщением.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap создает ошибку заданной категории, сохраняя внутреннюю причину.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf возвращает категорию ошибки. Любая ошибка вне таксономии
// считается внутренней.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message возвращает публичное сообщение ошибки. Для ошибок вне
// таксономии возвращается нейтральный текст, детали остаются в логах.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return "internal server error"
}

// HTTPStatus отображает категорию ошибки в HTTP-статус.
// Единственная таблица соответствия на всё приложение.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
