package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fundingpulse/internal/config"
	"fundingpulse/internal/dataprocessing"
	apperrors "fundingpulse/internal/errors"
	"fundingpulse/internal/shared/testutil"
	"fundingpulse/pkg/contracts/domain"
)

// MockDealQuerier is a mock for the DealQuerier interface
type MockDealQuerier struct {
	mock.Mock
}

func (m *MockDealQuerier) StageDeals(ctx context.Context, stage string, limit int) ([]domain.StageDeal, error) {
	args := m.Called(ctx, stage, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StageDeal), args.Error(1)
}

func (m *MockDealQuerier) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDealQuerier) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDealQuerier) Close() error {
	return m.Called().Error(0)
}

func loadSample(t *testing.T) *FundingService {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	svc, err := LoadFundingService(context.Background(), LoadOptions{
		Dataset: config.DatasetConfig{Path: testutil.WriteFundingCSV(t)},
		Logger:  logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestLoadFundingService(t *testing.T) {
	svc := loadSample(t)

	stats := svc.CleanStats()
	assert.Equal(t, dataprocessing.CleanStats{
		InitialRows:   7,
		DroppedAmount: 1,
		DroppedDate:   2,
		FinalRows:     4,
	}, stats)
	assert.Equal(t, 4, svc.Dataset().Len())
	assert.NoError(t, svc.Ready(context.Background()))
}

func TestLoadFundingService_FatalErrors(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		sentinel error
		errType  apperrors.ErrorType
	}{
		{
			name:     "missing amount column",
			csv:      "Company,Region\nAcme,US\n",
			sentinel: dataprocessing.ErrMissingColumn,
			errType:  apperrors.ErrTypeMissingColumn,
		},
		{
			name:     "nothing survives cleaning",
			csv:      "Company,Funding Amount (USD)\nAcme,not a number\n",
			sentinel: dataprocessing.ErrEmptyResult,
			errType:  apperrors.ErrTypeEmptyResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			_, err := LoadFundingService(context.Background(), LoadOptions{
				Dataset: config.DatasetConfig{Path: testutil.WriteCSVFile(t, tt.csv)},
				Logger:  logger,
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.errType, appErr.Type)
			assert.True(t, appErr.Fatal())
		})
	}
}

func TestLoadFundingService_MissingFile(t *testing.T) {
	_, err := LoadFundingService(context.Background(), LoadOptions{
		Dataset: config.DatasetConfig{Path: filepath.Join(t.TempDir(), "absent.csv")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFundingService_Views(t *testing.T) {
	svc := loadSample(t)
	ctx := context.Background()

	metrics := svc.Metrics(ctx)
	assert.Equal(t, 4, metrics.Count)
	assert.Equal(t, 9250000.0, metrics.Total)
	assert.Equal(t, "$9,250,000", metrics.TotalDisplay)

	regions := svc.TopRegions(ctx, 10)
	assert.Equal(t, []domain.GroupTotal{
		{Group: "Europe", Total: 5250000},
		{Group: "United States", Total: 4000000},
	}, regions)

	verticals := svc.TopVerticals(ctx, 3)
	require.Len(t, verticals, 3)
	assert.Equal(t, domain.GroupTotal{Group: "AI", Total: 5250000}, verticals[0])

	assert.Equal(t, []string{"All", "Europe", "United States"}, svc.RegionOptions(ctx))

	summary := svc.StageSummary(ctx)
	stages := make([]string, 0, len(summary))
	for _, row := range summary {
		stages = append(stages, row.Stage)
	}
	assert.Equal(t, []string{"Pre-Seed", "Seed", "Series A", "Grant"}, stages)

	recent := svc.RegionDeals(ctx, domain.RegionAll)
	require.Len(t, recent, 4)
	assert.Equal(t, "Eta", recent[0].Company)
	assert.Equal(t, "2023-04-01", recent[0].Date)

	europe := svc.RegionDeals(ctx, "Europe")
	assert.Len(t, europe, 2)

	largest := svc.LargestRounds(ctx, 2)
	require.Len(t, largest, 2)
	assert.Equal(t, "Beta", largest[0].Company)
	assert.Equal(t, "$5,000,000", largest[0].Amount)
	assert.Equal(t, "Feb 2023", largest[0].Date)

	box := svc.StageBoxplot(ctx)
	assert.NotNil(t, box.Points)
	for _, p := range box.Points {
		assert.Less(t, p.Record.Amount, box.Cutoff)
	}
}

func TestFundingService_StageDeals(t *testing.T) {
	svc := loadSample(t)

	deals, err := svc.StageDeals(context.Background(), "Seed", 10)
	require.NoError(t, err)

	companies := make([]string, 0, len(deals))
	for _, d := range deals {
		companies = append(companies, d.Company)
	}
	// The query runs over raw rows: Zeta (bad date) is included, Delta's
	// non-numeric amount sorts last.
	assert.Equal(t, []string{"Acme", "Zeta", "Delta"}, companies)
}

func TestFundingService_StageDealsErrors(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	ds := &domain.Dataset{Records: []domain.FundingRecord{{Company: "A", Amount: 1}}}

	t.Run("store failure", func(t *testing.T) {
		querier := new(MockDealQuerier)
		storeErr := apperrors.NewStorageError("query stage deals", errors.New("disk I/O error"))
		querier.On("StageDeals", mock.Anything, "Seed", 5).Return(nil, storeErr)

		svc := NewFundingService(ds, dataprocessing.CleanStats{}, querier, nil, logger)
		_, err := svc.StageDeals(context.Background(), "Seed", 5)

		assert.ErrorIs(t, err, storeErr)
		assert.True(t, handler.ContainsMessage("stage query failed"))
		querier.AssertExpectations(t)
	})

	t.Run("no store", func(t *testing.T) {
		svc := NewFundingService(ds, dataprocessing.CleanStats{}, nil, nil, logger)
		_, err := svc.StageDeals(context.Background(), "Seed", 5)
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})
}

func TestFundingService_Ready(t *testing.T) {
	ds := &domain.Dataset{Records: []domain.FundingRecord{{Company: "A", Amount: 1}}}

	t.Run("empty dataset", func(t *testing.T) {
		svc := NewFundingService(&domain.Dataset{}, dataprocessing.CleanStats{}, nil, nil, nil)
		assert.ErrorIs(t, svc.Ready(context.Background()), ErrDatasetNotLoaded)
	})

	t.Run("store ping fails", func(t *testing.T) {
		querier := new(MockDealQuerier)
		querier.On("Ping", mock.Anything).Return(errors.New("closed"))

		svc := NewFundingService(ds, dataprocessing.CleanStats{}, querier, nil, nil)
		assert.EqualError(t, svc.Ready(context.Background()), "closed")
		querier.AssertNotCalled(t, "Count", mock.Anything)
	})

	t.Run("store row count", func(t *testing.T) {
		tests := []struct {
			name    string
			count   int64
			err     error
			wantErr error
		}{
			{"all rows stored", 7, nil, nil},
			{"rows missing", 3, nil, ErrStoreUnavailable},
			{"count fails", 0, errors.New("no such table"), nil},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				querier := new(MockDealQuerier)
				querier.On("Ping", mock.Anything).Return(nil)
				querier.On("Count", mock.Anything).Return(tt.count, tt.err)

				svc := NewFundingService(ds, dataprocessing.CleanStats{InitialRows: 7}, querier, nil, nil)
				err := svc.Ready(context.Background())
				switch {
				case tt.err != nil:
					assert.ErrorIs(t, err, tt.err)
				case tt.wantErr != nil:
					assert.ErrorIs(t, err, tt.wantErr)
				default:
					assert.NoError(t, err)
				}
				querier.AssertExpectations(t)
			})
		}
	})
}

func TestFundingService_Report(t *testing.T) {
	svc := loadSample(t)

	report := svc.Report(context.Background(), dataprocessing.DefaultReportOptions())
	assert.Equal(t, 4, report.Metrics.Count)
	assert.Equal(t, domain.RegionAll, report.Region)
	assert.Len(t, report.RegionDeals, 4)
	assert.Len(t, report.LargestRounds, 4)
}
