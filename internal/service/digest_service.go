package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"wordletracker/internal/stats"
)

// ErrDigestDisabled is returned when a digest is requested but no sender
// address is configured.
var ErrDigestDisabled = errors.New("digest emails not configured")

// DigestService sends the weekly rankings summary via Amazon SES
type DigestService struct {
	client       *sesv2.Client
	statsService *StatsService
	fromEmail    string
	fromName     string
	recipients   []string
	enabled      bool
}

// NewDigestService creates a new digest service. With no from-address the
// service starts disabled and SendWeeklyDigest becomes an error, not a
// crash at startup.
func NewDigestService(statsService *StatsService, awsRegion, fromEmail, fromName string, recipients []string) (*DigestService, error) {
	if fromEmail == "" || len(recipients) == 0 {
		log.Println("Digest emails disabled: DIGEST_FROM_EMAIL or DIGEST_RECIPIENTS not configured")
		return &DigestService{statsService: statsService, enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Digest emails enabled: from=%s, region=%s, recipients=%d", fromEmail, awsRegion, len(recipients))
	return &DigestService{
		client:       sesv2.NewFromConfig(cfg),
		statsService: statsService,
		fromEmail:    fromEmail,
		fromName:     fromName,
		recipients:   recipients,
		enabled:      true,
	}, nil
}

// IsEnabled returns whether digest sending is configured
func (s *DigestService) IsEnabled() bool {
	return s.enabled
}

// SendWeeklyDigest emails the current rankings and trailing-week facts to
// every configured recipient.
func (s *DigestService) SendWeeklyDigest(ctx context.Context) error {
	if !s.enabled {
		return ErrDigestDisabled
	}

	rankings, err := s.statsService.Rankings()
	if err != nil {
		return fmt.Errorf("failed to compute rankings: %w", err)
	}
	facts, err := s.statsService.InterestingFacts(nil, nil)
	if err != nil {
		return fmt.Errorf("failed to compute facts: %w", err)
	}

	subject := "Wordle Tracker: weekly group summary"
	body := buildDigestBody(rankings, facts.Last7Days)

	for _, recipient := range s.recipients {
		if err := s.sendEmail(ctx, recipient, subject, body); err != nil {
			return err
		}
	}
	return nil
}

// buildDigestBody renders the digest as plain text. Mail clients vary too
// much for the score tables to be worth an HTML layout.
func buildDigestBody(rankings *stats.Rankings, weekFacts []stats.Fact) string {
	var b strings.Builder

	b.WriteString("Weekly Wordle group summary\n")
	b.WriteString("===========================\n\n")

	writeRanking := func(title string, entries []stats.Entry, value func(stats.Entry) string) {
		if len(entries) == 0 {
			return
		}
		b.WriteString(title + "\n")
		for i, e := range entries {
			fmt.Fprintf(&b, "  %d. %s (%s)\n", i+1, e.Username, value(e))
		}
		b.WriteString("\n")
	}

	writeRanking("Best average score", rankings.AverageScore, func(e stats.Entry) string {
		return fmt.Sprintf("%.2f", e.Stats.AverageScore)
	})
	writeRanking("Most days played", rankings.Participation, func(e stats.Entry) string {
		return fmt.Sprintf("%d days", e.Stats.DaysParticipated)
	})
	writeRanking("Longest streak", rankings.LongestStreak, func(e stats.Entry) string {
		return fmt.Sprintf("%d days", e.Stats.LongestStreak)
	})

	if len(weekFacts) > 0 {
		b.WriteString("This week's highlights\n")
		for _, f := range weekFacts {
			fmt.Fprintf(&b, "  %s: %s (%s)\n", f.Title, f.Username, f.Detail)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\nThis is an automated email from Wordle Tracker. Please do not reply.\n")
	return b.String()
}

func (s *DigestService) sendEmail(ctx context.Context, toEmail, subject, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send digest to %s: %w", toEmail, err)
	}

	log.Printf("Digest sent: to=%s", toEmail)
	return nil
}
