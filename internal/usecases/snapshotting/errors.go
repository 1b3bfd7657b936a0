package snapshotting

import (
	"errors"
	"fmt"
)

// CollectionError indica que a plataforma contábil estava inacessível ou
// retornou uma estrutura inválida. Aborta apenas a execução do cliente em
// questão; métricas individuais ausentes não geram este erro.
type CollectionError struct {
	RealmID string
	Err     error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("falha ao coletar dados da empresa %s: %v", e.RealmID, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

func IsCollectionError(err error) bool {
	var collectionErr *CollectionError
	return errors.As(err, &collectionErr)
}
