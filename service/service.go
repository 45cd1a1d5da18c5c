package service

import (
	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/database"
)

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

func (s *Service) CreateCollection(name string) (*collection.Collection, error) {
	return s.db.CreateCollection(name)
}

func (s *Service) GetCollection(name string) (*collection.Collection, error) {
	return s.db.GetCollection(name)
}

func (s *Service) ListCollections() []*collection.Collection {
	return s.db.ListCollections()
}

func (s *Service) DeleteCollection(name string) error {
	return s.db.DropCollection(name)
}
