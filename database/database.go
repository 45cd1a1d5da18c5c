package database

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/utils"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrCollectionExists   = errors.New("collection already exists")
	ErrCollectionNotFound = errors.New("collection not found")
)

type Config struct {
	// InitialCapacity is the number of slots reserved by new collections
	InitialCapacity int
}

type Database struct {
	config      *Config
	mutex       sync.RWMutex
	status      string
	collections map[string]*collection.Collection
	exit        chan struct{}
}

func NewDatabase(config *Config) *Database {
	s := &Database{
		config:      config,
		status:      StatusOpening,
		collections: map[string]*collection.Collection{},
		exit:        make(chan struct{}),
	}

	return s
}

func (db *Database) GetStatus() string {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return db.status
}

func (db *Database) setStatus(status string) {
	db.mutex.Lock()
	db.status = status
	db.mutex.Unlock()
}

func (db *Database) CreateCollection(name string) (*collection.Collection, error) {
	if name == "" {
		return nil, errors.New("collection name is mandatory")
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	_, exists := db.collections[name]
	if exists {
		return nil, fmt.Errorf("%w: '%s'", ErrCollectionExists, name)
	}

	col := collection.NewCollection(name, db.config.InitialCapacity)
	db.collections[name] = col

	return col, nil
}

func (db *Database) GetCollection(name string) (*collection.Collection, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	col, exists := db.collections[name]
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrCollectionNotFound, name)
	}

	return col, nil
}

// ListCollections returns the collections sorted by name.
func (db *Database) ListCollections() []*collection.Collection {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	result := make([]*collection.Collection, 0, len(db.collections))
	for _, name := range utils.GetKeys(db.collections) {
		result = append(result, db.collections[name])
	}
	return result
}

func (db *Database) DropCollection(name string) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	col, exists := db.collections[name]
	if !exists {
		return fmt.Errorf("%w: '%s'", ErrCollectionNotFound, name)
	}

	col.Clear()
	delete(db.collections, name)

	return nil
}

// Load makes the database operational. Collections live in memory only, so
// there is nothing to read.
func (db *Database) Load() error {
	log.Println("Loading database...")
	db.setStatus(StatusOperating)
	return nil
}

// Start loads the database and blocks until Stop is called.
func (db *Database) Start() error {

	err := db.Load()
	if err != nil {
		db.setStatus(StatusClosing)
		return err
	}

	<-db.exit

	return nil
}

func (db *Database) Stop() error {

	defer close(db.exit)

	db.setStatus(StatusClosing)

	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, col := range db.collections {
		log.Printf("Closing '%s' with %d documents...\n", name, col.Len())
		col.Clear()
	}
	db.collections = map[string]*collection.Collection{}

	return nil
}
