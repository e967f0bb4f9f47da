// Package entities defines the domain entities for the library service.
package entities

// Book представляет книгу каталога с числом доступных экземпляров.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Amount int64  `json:"amount"`
}

// NewBook создает новую книгу каталога.
func NewBook(title, author string, amount int64) *Book {
	return &Book{
		Title:  title,
		Author: author,
		Amount: amount,
	}
}
