// Package validation содержит Validator для накопления ошибок
// валидации полей запросов.
package validation

import "regexp"

// Скомпилированные шаблоны форматов полей каталога.
var (
	// AuthorRX - "Name Surname", оба слова с заглавной буквы.
	AuthorRX = regexp.MustCompile(`^[A-Z][a-zA-Z]+\s[A-Z][a-zA-Z]+$`)
	// TitleRX - название с заглавной буквы, только буквы.
	TitleRX = regexp.MustCompile(`^[A-Z][a-zA-Z]*$`)
)

// MinTitleLength - минимальная длина названия книги.
const MinTitleLength = 3

// Validator накапливает ошибки валидации по именам полей.
// Validator с пустой картой Errors считается валидным.
type Validator struct {
	Errors map[string]string
}

// New создает новый пустой Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid возвращает true, если ошибок нет.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError записывает ошибку для поля key. Уже записанная ошибка
// не перезаписывается: сообщается первая неудачная проверка.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check добавляет ошибку для key, только когда ok ложно.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Matches возвращает true, если value соответствует шаблону rx.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}
