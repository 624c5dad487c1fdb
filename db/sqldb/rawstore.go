package sqldb

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
)

// RawSQLStore holds named SQL texts, loaded once at startup.
type RawSQLStore struct {
	stmts map[string]string
}

func NewRawStore() *RawSQLStore {
	return &RawSQLStore{stmts: make(map[string]string)}
}

func (s *RawSQLStore) Set(key string, rawStmt string) {
	s.stmts[key] = rawStmt
}

func (s *RawSQLStore) Get(key string) (string, bool) {
	stmt, exists := s.stmts[key]
	return stmt, exists
}

// MustGet panics on an unknown key. Use it for statements shipped with the binary.
func (s *RawSQLStore) MustGet(key string) string {
	stmt, exists := s.stmts[key]
	if !exists {
		panic(fmt.Errorf("raw sql stmt %q not loaded", key))
	}
	return stmt
}

func (s *RawSQLStore) GetAll() map[string]string {
	return s.stmts
}

type StoreGroupedStmtKey struct {
	Group    string
	StmtName string
}

func (k StoreGroupedStmtKey) String() string {
	return k.Group + "." + k.StmtName
}

// Load reads `sql/*` from fsys into the store under group.
// `name.<dbtype>` files win over standard `name.sql` files.
func (s *RawSQLStore) Load(fsys fs.FS, group string, dbtype string) error {
	files, err := fs.ReadDir(fsys, "sql")
	if err != nil {
		return fmt.Errorf("failed to read `sql` dir. %w", err)
	}
	dialect := map[string]bool{}
	loaded := map[string]bool{}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		filename := f.Name()
		ext := path.Ext(filename)
		name := strings.TrimSuffix(filename, ext)
		ext = strings.TrimPrefix(ext, ".")
		if ext != dbtype && ext != "sql" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join("sql", filename))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", filename, err)
		}
		key := StoreGroupedStmtKey{Group: group, StmtName: name}.String()
		switch ext {
		case dbtype:
			// exact matching file extension -> use it as-is for dialects
			s.Set(key, string(data))
			dialect[key] = true
			loaded[key] = true
		case "sql":
			if !dialect[key] {
				s.Set(key, string(data))
				loaded[key] = true
			}
		}
	}
	logrus.Infof("[%s] %d sql raw stmts loaded for group %s", dbtype, len(loaded), group)
	return nil
}
