package waitlist

import (
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/waitlyst/waitlyst/internal/log"
	apperrors "github.com/waitlyst/waitlyst/pkg/errors"
)

var exportHeader = []string{"Position", "Email", "Referral Code", "Referrals", "Referred By", "Joined"}

// exportDateFormat renders Joined as M/D/YYYY. Fixed rather than host-locale
// dependent so exports are identical across servers.
const exportDateFormat = "1/2/2006"

func (s *waitlistService) ExportCSV(ctx context.Context) (string, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, err := s.repository.GetAllEntries(ctx)
	if err != nil {
		logger.Error("Failed to fetch entries for CSV export", "error", err)
		return "", err
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(exportHeader); err != nil {
		return "", apperrors.NewInternalServerError("failed to write CSV header", err)
	}

	for _, entry := range entries {
		record := []string{
			strconv.Itoa(entry.Position),
			entry.Email,
			entry.ReferralCode,
			strconv.Itoa(entry.ReferralCount),
			entry.ReferredBy,
			entry.CreatedAt.Format(exportDateFormat),
		}
		if err := w.Write(record); err != nil {
			return "", apperrors.NewInternalServerError("failed to write CSV record", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", apperrors.NewInternalServerError("failed to flush CSV", err)
	}

	// One header line plus one line per entry, no trailing newline.
	return strings.TrimRight(sb.String(), "\n"), nil
}

// ExportFilename names a CSV download after the day it was taken.
func ExportFilename(now time.Time) string {
	return "waitlyst-export-" + now.Format("2006-01-02") + ".csv"
}
