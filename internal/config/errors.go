package config

import "errors"

var (
	// ErrReadConfig не удалось прочитать или разобрать файл конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrEnvOverride некорректное значение в переменных окружения
	ErrEnvOverride = errors.New("config: invalid environment override")

	// ErrInvalidConfig конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)
