package continuation

import "errors"

var (
	// ErrNotFound снапшот не найден, истек или уже прочитан
	ErrNotFound = errors.New("continuation.store: snapshot not found")

	// ErrUnsupportedVersion снапшот записан несовместимой версией схемы
	ErrUnsupportedVersion = errors.New("continuation.store: unsupported snapshot version")

	// ErrEncode возвращается при ошибке сериализации снапшота
	ErrEncode = errors.New("continuation.store: failed to encode snapshot")

	// ErrDecode возвращается при ошибке разбора снапшота
	ErrDecode = errors.New("continuation.store: failed to decode snapshot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("continuation.store: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения запроса к хранилищу
	ErrExecQuery = errors.New("continuation.store: failed to execute query")
)
