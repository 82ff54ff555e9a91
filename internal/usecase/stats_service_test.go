package usecase

import (
	"context"
	"testing"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/domain/repository"
	"TradePulse/pkg/cache"
)

func newStatsService(t *testing.T, store repository.TradeStore) *StatsService {
	t.Helper()
	return NewStatsService(store, cache.NewMemoryCache(), repository.NopMetrics{}, testLogger(t), time.Minute)
}

func TestQuarterlyStats(t *testing.T) {
	store := &stubStore{exports: []models.TradeRecord{
		{Quarter: "2024Q2", ExportValue: 30},
		{Quarter: "2024Q1", ExportValue: 10},
		{Quarter: "2024Q2", ExportValue: 5},
	}}
	svc := newStatsService(t, store)

	stats, err := svc.Quarterly(context.Background(), models.FlowExport)
	if err != nil {
		t.Fatalf("quarterly: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 quarters, got %d", len(stats))
	}
	if stats[0].Quarter != "2024Q1" || stats[0].Value != 10 || stats[0].Records != 1 {
		t.Fatalf("unexpected first quarter: %+v", stats[0])
	}
	if stats[1].Quarter != "2024Q2" || stats[1].Value != 35 || stats[1].Records != 2 {
		t.Fatalf("unexpected second quarter: %+v", stats[1])
	}
}

func TestGrowthStats(t *testing.T) {
	store := &stubStore{exports: []models.TradeRecord{
		{Quarter: "2024Q1", ExportValue: 100},
		{Quarter: "2024Q2", ExportValue: 150},
		{Quarter: "2024Q3", ExportValue: 120},
	}}
	svc := newStatsService(t, store)

	stats, err := svc.Growth(context.Background(), models.FlowExport)
	if err != nil {
		t.Fatalf("growth: %v", err)
	}

	first := stats[0]
	if first.GrowthRate != 0 || first.GrowthAmount != 0 {
		t.Fatalf("first quarter must report no growth: %+v", first)
	}
	if !first.IsPositiveGrowth {
		t.Fatal("first quarter has rate 0 and must count as positive")
	}

	second := stats[1]
	if second.GrowthRate != 50 || second.GrowthAmount != 50 || !second.IsPositiveGrowth {
		t.Fatalf("unexpected second quarter growth: %+v", second)
	}

	third := stats[2]
	if third.GrowthRate != -20 || third.GrowthAmount != -30 || third.IsPositiveGrowth {
		t.Fatalf("unexpected third quarter growth: %+v", third)
	}
}

func TestGrowthZeroPredecessor(t *testing.T) {
	store := &stubStore{exports: []models.TradeRecord{
		{Quarter: "2024Q1", ExportValue: 0},
		{Quarter: "2024Q2", ExportValue: 80},
	}}
	svc := newStatsService(t, store)

	stats, err := svc.Growth(context.Background(), models.FlowExport)
	if err != nil {
		t.Fatalf("growth: %v", err)
	}
	second := stats[1]
	if second.GrowthRate != 0 {
		t.Fatalf("zero predecessor must yield a zero rate, got %v", second.GrowthRate)
	}
	if second.GrowthAmount != 80 {
		t.Fatalf("expected the full value as growth amount, got %v", second.GrowthAmount)
	}
	if !second.IsPositiveGrowth {
		t.Fatal("rate 0 after a zero predecessor must count as positive")
	}
}

func TestBalanceJoinsFlows(t *testing.T) {
	store := &stubStore{
		exports: []models.TradeRecord{
			{Quarter: "2024Q1", ExportValue: 100},
			{Quarter: "2024Q2", ExportValue: 200},
		},
		imports: []models.TradeRecord{
			{Quarter: "2024Q1", ImportValue: 150},
			{Quarter: "2024Q3", ImportValue: 50},
		},
	}
	svc := newStatsService(t, store)

	stats, err := svc.Balance(context.Background())
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 quarters, got %d", len(stats))
	}
	if stats[0].Balance != -50 {
		t.Fatalf("2024Q1 balance: got %v want -50", stats[0].Balance)
	}
	if stats[1].Balance != 200 || stats[1].Imports != 0 {
		t.Fatalf("2024Q2 must have zero imports: %+v", stats[1])
	}
	if stats[2].Quarter != "2024Q3" || stats[2].Balance != -50 || stats[2].Exports != 0 {
		t.Fatalf("2024Q3 must have zero exports: %+v", stats[2])
	}
}

func TestTopCountries(t *testing.T) {
	store := &stubStore{exports: []models.TradeRecord{
		{Quarter: "2024Q1", ExportValue: 60, Country: "UAE"},
		{Quarter: "2024Q1", ExportValue: 25, DestinationCountry: "DR Congo"},
		{Quarter: "2024Q2", ExportValue: 15, Country: "UAE"},
		{Quarter: "2024Q2", ExportValue: 0},
	}}
	svc := newStatsService(t, store)

	stats, err := svc.Countries(context.Background(), models.FlowExport, 2)
	if err != nil {
		t.Fatalf("countries: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected limit 2, got %d", len(stats))
	}
	if stats[0].Country != "UAE" || stats[0].Value != 75 || stats[0].Records != 2 {
		t.Fatalf("unexpected top partner: %+v", stats[0])
	}
	if stats[0].Share != 75 {
		t.Fatalf("UAE share: got %v want 75", stats[0].Share)
	}
	if stats[1].Country != "DR Congo" || stats[1].Share != 25 {
		t.Fatalf("unexpected second partner: %+v", stats[1])
	}
}

func TestHealth(t *testing.T) {
	store := &stubStore{
		exports: exportRecords("2024Q1", []float64{1, 2}),
		imports: []models.TradeRecord{{Quarter: "2024Q1", ImportValue: 3}},
	}
	svc := newStatsService(t, store)

	status := svc.Health(context.Background())
	if status.Status != "ok" {
		t.Fatalf("expected ok, got %s", status.Status)
	}
	if status.Backend != "stub" || status.ExportRecords != 2 || status.ImportRecords != 1 {
		t.Fatalf("unexpected status: %+v", status)
	}

	empty := newStatsService(t, &stubStore{})
	if got := empty.Health(context.Background()); got.Status != "degraded" {
		t.Fatalf("empty store must report degraded, got %s", got.Status)
	}
}
