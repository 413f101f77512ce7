package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"time"

	appconfig "gametrack-backend/internal/config"
	"gametrack-backend/internal/models"
	"gametrack-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiveLister provides the final-closed archive rows.
type ArchiveLister interface {
	ListFinalClosed(ctx context.Context) ([]models.GameRecord, error)
}

// ArchiveService exports the final-closed archive as CSV to an
// S3-compatible bucket.
type ArchiveService struct {
	games ArchiveLister
	cfg   *appconfig.Config
}

func NewArchiveService(games ArchiveLister, cfg *appconfig.Config) *ArchiveService {
	return &ArchiveService{games: games, cfg: cfg}
}

// Export uploads a timestamped CSV snapshot of the archive and
// returns the object key.
func (s *ArchiveService) Export(ctx context.Context) (string, error) {
	if s.cfg.Archive.Bucket == "" || s.cfg.Archive.AccessKey == "" {
		return "", fmt.Errorf("%w: archive storage not configured", ErrInvalidInput)
	}

	games, err := s.games.ListFinalClosed(ctx)
	if err != nil {
		return "", err
	}

	data, err := archiveCSV(games)
	if err != nil {
		return "", err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.Archive.AccessKey,
			s.cfg.Archive.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.cfg.Archive.Region),
	)
	if err != nil {
		return "", fmt.Errorf("configure archive client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Archive.Endpoint)
		}
	})

	key := fmt.Sprintf("archive/final_closed_%s.csv", timeutil.Now().Format("20060102_150405"))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Archive.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("upload archive: %w", err)
	}

	log.Printf("[Archive] Exported %d games to %s", len(games), key)
	return key, nil
}

func archiveCSV(games []models.GameRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"location", "game_key", "gname", "ticket_price", "ticket_count",
		"tickets_sold", "winners_sold", "cash_hand", "date_opened", "date_closed"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, g := range games {
		row := []string{
			g.Location,
			g.Key,
			strDeref(g.Name),
			floatDeref(g.TicketPrice),
			intDeref(g.TicketCount),
			strconv.Itoa(g.TicketsSold),
			strconv.Itoa(g.WinnersSold),
			strconv.FormatFloat(g.CashHand, 'f', 2, 64),
			stampDeref(g.DateOpened),
			stampDeref(g.DateClosed),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func strDeref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func floatDeref(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func intDeref(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func stampDeref(v *time.Time) string {
	if v == nil {
		return ""
	}
	return timeutil.Stamp(*v)
}
