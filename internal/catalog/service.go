package catalog

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lepinkainen/marquee/internal/logging"
)

// DefaultRegion is used for watch providers when no region is given.
const DefaultRegion = "US"

// Service answers title, trailer, recommendation and browse queries.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	primary   PrimaryProvider
	secondary SecondaryProvider
	castLimit int
	region    string
}

// Option configures a Service.
type Option func(*Service)

// WithCastLimit caps the number of cast members returned by Cast. 0 means unlimited.
func WithCastLimit(limit int) Option {
	return func(s *Service) {
		if limit >= 0 {
			s.castLimit = limit
		}
	}
}

// WithRegion sets the default watch provider region.
func WithRegion(region string) Option {
	return func(s *Service) {
		if region != "" {
			s.region = strings.ToUpper(region)
		}
	}
}

// NewService creates a Service. secondary may be nil, in which case records
// carry no secondary ratings.
func NewService(primary PrimaryProvider, secondary SecondaryProvider, opts ...Option) *Service {
	s := &Service{
		primary:   primary,
		secondary: secondary,
		region:    DefaultRegion,
	}
	for _, opt := range opts {
		opt(s)
	}
	if secondary == nil {
		slog.Info("No secondary ratings provider configured; secondary ratings disabled")
	}
	return s
}

// CastLimit returns the configured cast cap.
func (s *Service) CastLimit() int {
	return s.castLimit
}

// validate checks the request arguments and returns the numeric provider id.
func validate(titleID string, kind MediaKind) (int, error) {
	if !kind.Valid() {
		return 0, ErrInvalidMediaKind
	}
	titleID = strings.TrimSpace(titleID)
	if titleID == "" {
		return 0, ErrInvalidTitleID
	}
	id, err := strconv.Atoi(titleID)
	if err != nil || id <= 0 {
		return 0, ErrInvalidTitleID
	}
	return id, nil
}

func logger(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
