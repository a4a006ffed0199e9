package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateInterest(t *testing.T) {
	loanDate := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		principal       int64
		interestPercent float64
		asOf            time.Time
		wantDays        int
		wantInterest    int64
	}{
		{
			name:            "two full months",
			principal:       50000,
			interestPercent: 2,
			asOf:            loanDate.Add(60 * 24 * time.Hour),
			wantDays:        60,
			wantInterest:    2000,
		},
		{
			name:            "same instant accrues nothing",
			principal:       50000,
			interestPercent: 2,
			asOf:            loanDate,
			wantDays:        0,
			wantInterest:    0,
		},
		{
			name:            "clock skew clamps to zero",
			principal:       50000,
			interestPercent: 2,
			asOf:            loanDate.Add(-48 * time.Hour),
			wantDays:        0,
			wantInterest:    0,
		},
		{
			name:            "partial day counts as a full day",
			principal:       50000,
			interestPercent: 2,
			asOf:            loanDate.Add(1 * time.Hour),
			wantDays:        1,
			wantInterest:    33, // 50000 * 2 * (1/30) / 100 = 33.33
		},
		{
			name:            "half rupee rounds up",
			principal:       2250,
			interestPercent: 1,
			asOf:            loanDate.Add(30 * 24 * time.Hour),
			wantDays:        30,
			wantInterest:    23, // 22.50 rounds away from zero
		},
		{
			name:            "ten days on a lakh",
			principal:       100000,
			interestPercent: 1.5,
			asOf:            loanDate.Add(10 * 24 * time.Hour),
			wantDays:        10,
			wantInterest:    500, // 100000 * 1.5 * (10/30) / 100
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateInterest(tt.principal, tt.interestPercent, loanDate, tt.asOf)
			assert.Equal(t, tt.wantDays, got.DaysDifference)
			assert.Equal(t, tt.wantInterest, got.InterestAmount)
		})
	}
}

func TestCalculateInterestQuoteMatchesSettlement(t *testing.T) {
	loanDate := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	asOf := loanDate.Add(45 * 24 * time.Hour)

	quote := CalculateInterest(75000, 2.5, loanDate, asOf)
	settle := CalculateInterest(75000, 2.5, loanDate, asOf)

	assert.Equal(t, quote.InterestAmount, settle.InterestAmount)
	assert.Equal(t, quote.DaysDifference, settle.DaysDifference)
}
