package zombiezen

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/revelaction/hmmtag/hmm"
	"github.com/revelaction/hmmtag/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const (
	kindStart      = "start"
	kindTransition = "transition"
	kindEmission   = "emission"
)

// ModelStore keeps model probabilities as one row per table entry.
type ModelStore struct {
	pool *sqlitex.Pool
}

var _ storage.ModelRepository = (*ModelStore)(nil)

func NewModelStore(pool *sqlitex.Pool) *ModelStore {
	return &ModelStore{pool: pool}
}

func (s *ModelStore) ModelNames() ([]string, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	names := []string{}
	err = sqlitex.Execute(conn, "SELECT name FROM models ORDER BY name", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (s *ModelStore) ReadModel(name string) (*hmm.Model, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var id string
	err = sqlitex.Execute(conn, "SELECT id FROM models WHERE name = ? LIMIT 1", &sqlitex.ExecOptions{
		Args: []interface{}{name},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			id = stmt.ColumnText(0)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("model not found: %s", name)
	}

	m := &hmm.Model{
		Start:      map[string]float64{},
		Transition: hmm.Table{},
		Emission:   hmm.Table{},
	}

	err = sqlitex.Execute(conn, "SELECT kind, row_label, key, prob FROM model_probs WHERE model_id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			kind := stmt.ColumnText(0)
			row := stmt.ColumnText(1)
			key := stmt.ColumnText(2)
			prob := stmt.ColumnFloat(3)

			switch kind {
			case kindStart:
				m.Start[key] = prob
			case kindTransition:
				set(m.Transition, row, key, prob)
			case kindEmission:
				set(m.Emission, row, key, prob)
			default:
				return fmt.Errorf("unknown probability kind %q", kind)
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}

	return m, nil
}

// WriteModel replaces the model stored under name.
func (s *ModelStore) WriteModel(name string, m *hmm.Model) (err error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "DELETE FROM model_probs WHERE model_id IN (SELECT id FROM models WHERE name = ?)", &sqlitex.ExecOptions{
		Args: []interface{}{name},
	})
	if err != nil {
		return fmt.Errorf("failed to delete previous model: %w", err)
	}

	err = sqlitex.Execute(conn, "DELETE FROM models WHERE name = ?", &sqlitex.ExecOptions{
		Args: []interface{}{name},
	})
	if err != nil {
		return fmt.Errorf("failed to delete previous model: %w", err)
	}

	id := uuid.NewString()
	err = sqlitex.Execute(conn, "INSERT INTO models (id, name, created) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))", &sqlitex.ExecOptions{
		Args: []interface{}{id, name},
	})
	if err != nil {
		return fmt.Errorf("failed to insert model: %w", err)
	}

	stmt := conn.Prep("INSERT INTO model_probs (model_id, kind, row_label, key, prob) VALUES (?, ?, ?, ?, ?)")
	insert := func(kind, row, key string, prob float64) error {
		stmt.BindText(1, id)
		stmt.BindText(2, kind)
		stmt.BindText(3, row)
		stmt.BindText(4, key)
		stmt.BindFloat(5, prob)
		if _, err := stmt.Step(); err != nil {
			return fmt.Errorf("failed to insert %s probability: %w", kind, err)
		}
		return stmt.Reset()
	}

	for key, p := range m.Start {
		if err = insert(kindStart, "", key, p); err != nil {
			return err
		}
	}

	for kind, table := range map[string]hmm.Table{kindTransition: m.Transition, kindEmission: m.Emission} {
		for row, probs := range table {
			for key, p := range probs {
				if err = insert(kind, row, key, p); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func set(t hmm.Table, row, key string, p float64) {
	r, ok := t[row]
	if !ok {
		r = map[string]float64{}
		t[row] = r
	}
	r[key] = p
}
