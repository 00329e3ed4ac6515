package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crowley-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/crowley-insights-api/internal/domain"
)

// insertionColumns segue o layout gravado pelo script de importação
var insertionColumns = []string{
	"praca", "emissora", "anunciante", "anuncio", "duracao",
	"data_texto", "data", "tipo", "daypart", "volume_insercoes",
}

//go:generate mockgen -source=insertion.go -destination=mocks/insertion_repository_mock.go -package=mocks
type InsertionRepository interface {
	ListInsertions(ctx context.Context) ([]domain.RawInsertion, error)
}

type insertionRepository struct {
	conn  postgres.Queryer
	table string
}

func NewInsertionRepository(conn postgres.Queryer, table string) InsertionRepository {
	return &insertionRepository{
		conn:  conn,
		table: table,
	}
}

// ListInsertions lê a base inteira. A normalização fica a cargo de dataset.Load
func (r *insertionRepository) ListInsertions(ctx context.Context) ([]domain.RawInsertion, error) {
	query, args, err := r.selectQuery()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao montar consulta de inserções")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar inserções")
	}
	defer rows.Close()

	insertions := make([]domain.RawInsertion, 0, 1024)
	for rows.Next() {
		insertion, err := r.deserializeInsertion(rows)
		if err != nil {
			return nil, err
		}
		insertions = append(insertions, insertion)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao percorrer inserções")
	}

	logrus.WithFields(logrus.Fields{
		"table": r.table,
		"rows":  len(insertions),
	}).Debug("Inserções lidas do banco")

	return insertions, nil
}

func (r *insertionRepository) selectQuery() (string, []interface{}, error) {
	return squirrel.
		Select(insertionColumns...).
		From(r.table).
		OrderBy("data", "anunciante").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *insertionRepository) deserializeInsertion(rows *sql.Rows) (domain.RawInsertion, error) {
	var (
		market, vehicle, advertiser, creative sql.NullString
		kind, dayPart, dateText               sql.NullString
		duration, volume                      sql.NullInt64
		date                                  sql.NullTime
	)

	if err := rows.Scan(
		&market,
		&vehicle,
		&advertiser,
		&creative,
		&duration,
		&dateText,
		&date,
		&kind,
		&dayPart,
		&volume,
	); err != nil {
		return domain.RawInsertion{}, errors.Wrap(err, "erro ao ler linha de inserção")
	}

	insertion := domain.RawInsertion{
		Market:     market.String,
		Vehicle:    vehicle.String,
		Advertiser: advertiser.String,
		Creative:   creative.String,
		Duration:   int(duration.Int64),
		DateText:   dateText.String,
		Type:       kind.String,
		DayPart:    dayPart.String,
	}

	if date.Valid {
		d := date.Time.In(time.UTC)
		insertion.DateTime = &d
	}

	if volume.Valid {
		v := int(volume.Int64)
		insertion.Volume = &v
	}

	return insertion, nil
}
