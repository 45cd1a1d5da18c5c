package service

import (
	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/database"
)

var (
	ErrorCollectionNotFound      = database.ErrCollectionNotFound
	ErrorCollectionAlreadyExists = database.ErrCollectionExists
)

type Servicer interface {
	CreateCollection(name string) (*collection.Collection, error)
	GetCollection(name string) (*collection.Collection, error)
	ListCollections() []*collection.Collection
	DeleteCollection(name string) error
}
