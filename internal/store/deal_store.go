package store

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fundingpulse/internal/dataprocessing"
	apperrors "fundingpulse/internal/errors"
	"fundingpulse/pkg/contracts/domain"
)

// TableName is the SQL table holding the raw funding rows.
const TableName = "fundings_data"

const insertBatchSize = 500

// fundingRow mirrors the raw CSV columns. The amount is stored as a nullable
// REAL so that ORDER BY compares numbers; unparseable cells become NULL.
type fundingRow struct {
	ID       uint     `gorm:"primaryKey"`
	Company  string   `gorm:"column:Company"`
	Region   string   `gorm:"column:Region"`
	Vertical string   `gorm:"column:Vertical"`
	Amount   *float64 `gorm:"column:Funding Amount (USD)"`
	Stage    string   `gorm:"column:Funding Stage"`
	Date     string   `gorm:"column:Funding Date"`
}

func (fundingRow) TableName() string { return TableName }

const stageDealsQuery = `
SELECT
    Company AS company,
    Region AS region,
    Vertical AS vertical,
    "Funding Amount (USD)" AS amount,
    "Funding Date" AS date
FROM fundings_data
WHERE "Funding Stage" = ?
ORDER BY "Funding Amount (USD)" DESC
LIMIT ?`

type stageDealRow struct {
	Company  string   `gorm:"column:company"`
	Region   string   `gorm:"column:region"`
	Vertical string   `gorm:"column:vertical"`
	Amount   *float64 `gorm:"column:amount"`
	Date     string   `gorm:"column:date"`
}

// DealStore answers SQL queries over the raw funding rows.
type DealStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewDealStore opens a private in-memory database and loads raw into it.
func NewDealStore(ctx context.Context, raw *domain.RawDataset, logger *slog.Logger) (*DealStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "deal_store"))

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		return nil, apperrors.NewStorageError("open sqlite", err)
	}

	// every pooled connection to :memory: would be a separate database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.NewStorageError("access sql pool", err)
	}
	sqlDB.SetMaxOpenConns(1)

	s := &DealStore{db: db, logger: logger}
	if err := db.WithContext(ctx).AutoMigrate(&fundingRow{}); err != nil {
		s.Close()
		return nil, apperrors.NewStorageError("create table", err).WithContext("table", TableName)
	}

	rows := toRows(raw)
	if len(rows) > 0 {
		if err := db.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error; err != nil {
			s.Close()
			return nil, apperrors.NewStorageError("insert rows", err).WithContext("table", TableName)
		}
	}

	logger.InfoContext(ctx, "funding table loaded",
		slog.String("table", TableName),
		slog.Int("rows", len(rows)))
	return s, nil
}

func toRows(raw *domain.RawDataset) []fundingRow {
	var (
		company  = raw.ColumnIndex(domain.ColumnCompany)
		region   = raw.ColumnIndex(domain.ColumnRegion)
		vertical = raw.ColumnIndex(domain.ColumnVertical)
		amount   = raw.ColumnIndex(domain.ColumnAmount)
		stage    = raw.ColumnIndex(domain.ColumnStage)
		date     = raw.ColumnIndex(domain.ColumnDate)
	)

	rows := make([]fundingRow, 0, len(raw.Rows))
	for _, r := range raw.Rows {
		row := fundingRow{
			Company:  raw.Cell(r, company),
			Region:   raw.Cell(r, region),
			Vertical: raw.Cell(r, vertical),
			Stage:    raw.Cell(r, stage),
			Date:     raw.Cell(r, date),
		}
		if v, ok := dataprocessing.ParseAmount(raw.Cell(r, amount)); ok {
			row.Amount = &v
		}
		rows = append(rows, row)
	}
	return rows
}

// StageDeals returns up to limit rows of the given stage, largest amount
// first. Rows without a numeric amount sort last.
func (s *DealStore) StageDeals(ctx context.Context, stage string, limit int) ([]domain.StageDeal, error) {
	if limit <= 0 {
		return []domain.StageDeal{}, nil
	}

	var found []stageDealRow
	if err := s.db.WithContext(ctx).Raw(stageDealsQuery, stage, limit).Scan(&found).Error; err != nil {
		s.logger.ErrorContext(ctx, "stage query failed",
			slog.String("stage", stage),
			slog.String("error", err.Error()))
		return nil, apperrors.NewStorageError(fmt.Sprintf("query %s deals", stage), err)
	}

	deals := make([]domain.StageDeal, len(found))
	for i, r := range found {
		deals[i] = domain.StageDeal(r)
	}
	return deals, nil
}

// Count returns the number of stored rows.
func (s *DealStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&fundingRow{}).Count(&n).Error; err != nil {
		return 0, apperrors.NewStorageError("count rows", err)
	}
	return n, nil
}

// Ping checks that the database is reachable.
func (s *DealStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database.
func (s *DealStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
