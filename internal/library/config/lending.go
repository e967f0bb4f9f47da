package config

// LendingConfig содержит настройки выдачи книг.
type LendingConfig struct {
	// BorrowLimit - максимальное число одновременных выдач на читателя.
	BorrowLimit int64 `yaml:"borrow_limit" env:"LIBRARY_BORROW_LIMIT" env-default:"10"`
}
