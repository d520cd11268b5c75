package service

import (
	"context"
	"math"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/directory-admin/internal/domain"
	"github.com/spec-kit/directory-admin/internal/repository"
	apperrors "github.com/spec-kit/directory-admin/pkg/util/errorutil"
)

// NoVerificationIDPlaceholder stands in for an absent verification id in summaries.
const NoVerificationIDPlaceholder = "No verification ID"

// RoleCounts is the population split by role.
type RoleCounts struct {
	TotalUsers     int64
	EmployerCount  int64
	ApplicantCount int64
}

// RolePercentages holds each role's share of the population, two decimals.
type RolePercentages struct {
	TotalUsers          int64
	ApplicantPercentage string
	EmployerPercentage  string
}

// UserListing partitions full user records by role.
type UserListing struct {
	Employers  []domain.User
	Applicants []domain.User
}

// UserSummary is the administrator-facing projection of a user. It carries no
// credential or contact-email fields.
type UserSummary struct {
	UserID                string
	FullName              string
	Contact               string
	Role                  domain.Role
	EmployerInformation   *domain.EmployerInformation
	DisabilityInformation *domain.DisabilityInformation
	Banned                bool
}

// SummaryListing partitions summaries by role.
type SummaryListing struct {
	Employers  []UserSummary
	Applicants []UserSummary
}

// DirectoryStatsService derives listings and counts from the current directory.
// Nothing here is cached.
type DirectoryStatsService struct {
	directory repository.UserDirectory
	logger    *zap.Logger
}

// NewDirectoryStatsService constructs the service.
func NewDirectoryStatsService(deps AdminDependencies) *DirectoryStatsService {
	return &DirectoryStatsService{
		directory: deps.Directory,
		logger:    deps.logger(),
	}
}

// CountsByRole counts from a single scan so the parts always sum to the total.
func (s *DirectoryStatsService) CountsByRole(ctx context.Context) (RoleCounts, error) {
	users, err := s.findAll(ctx)
	if err != nil {
		return RoleCounts{}, err
	}

	counts := RoleCounts{TotalUsers: int64(len(users))}
	for i := range users {
		switch users[i].Role {
		case domain.RoleEmployer:
			counts.EmployerCount++
		case domain.RoleApplicant:
			counts.ApplicantCount++
		}
	}
	return counts, nil
}

// PercentagesByRole returns each role's share of applicants plus employers.
func (s *DirectoryStatsService) PercentagesByRole(ctx context.Context) (RolePercentages, error) {
	var applicants, employers int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.directory.Count(gctx, repository.RoleFilter(domain.RoleApplicant))
		applicants = n
		return err
	})
	g.Go(func() error {
		n, err := s.directory.Count(gctx, repository.RoleFilter(domain.RoleEmployer))
		employers = n
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("count users by role", zap.Error(err))
		return RolePercentages{}, apperrors.NewStorageFailure(err)
	}

	total := applicants + employers
	if total == 0 {
		return RolePercentages{}, apperrors.NewEmptyPopulation()
	}

	return RolePercentages{
		TotalUsers:          total,
		ApplicantPercentage: percentage(applicants, total),
		EmployerPercentage:  percentage(employers, total),
	}, nil
}

// PopulationTotal counts every user and fails with EmptyPopulation when none exist.
func (s *DirectoryStatsService) PopulationTotal(ctx context.Context) (int64, error) {
	total, err := s.directory.Count(ctx, repository.UserFilter{})
	if err != nil {
		return 0, apperrors.NewStorageFailure(err)
	}
	if total == 0 {
		return 0, apperrors.NewEmptyPopulation()
	}
	return total, nil
}

// ListUsers returns full records partitioned by role.
func (s *DirectoryStatsService) ListUsers(ctx context.Context) (UserListing, error) {
	users, err := s.findAll(ctx)
	if err != nil {
		return UserListing{}, err
	}

	listing := UserListing{Employers: []domain.User{}, Applicants: []domain.User{}}
	for i := range users {
		switch users[i].Role {
		case domain.RoleEmployer:
			listing.Employers = append(listing.Employers, users[i])
		case domain.RoleApplicant:
			listing.Applicants = append(listing.Applicants, users[i])
		}
	}
	return listing, nil
}

// ListDirectory returns summaries partitioned by role.
func (s *DirectoryStatsService) ListDirectory(ctx context.Context) (SummaryListing, error) {
	users, err := s.findAll(ctx)
	if err != nil {
		return SummaryListing{}, err
	}

	listing := SummaryListing{Employers: []UserSummary{}, Applicants: []UserSummary{}}
	for i := range users {
		summary := Summarize(&users[i])
		switch users[i].Role {
		case domain.RoleEmployer:
			listing.Employers = append(listing.Employers, summary)
		case domain.RoleApplicant:
			listing.Applicants = append(listing.Applicants, summary)
		}
	}
	return listing, nil
}

// Summarize projects a user onto UserSummary, substituting the placeholder for
// an absent verification id.
func Summarize(user *domain.User) UserSummary {
	summary := UserSummary{
		UserID:   user.ID,
		FullName: user.FullName,
		Contact:  user.Contact,
		Role:     user.Role,
		Banned:   user.Banned,
	}
	switch user.Role {
	case domain.RoleEmployer:
		info := domain.EmployerInformation{}
		if user.EmployerInformation != nil {
			info = *user.EmployerInformation
		}
		if !info.HasSubmission() {
			info.VerificationID = NoVerificationIDPlaceholder
		}
		summary.EmployerInformation = &info
	case domain.RoleApplicant:
		info := domain.DisabilityInformation{}
		if user.DisabilityInformation != nil {
			info = *user.DisabilityInformation
		}
		if !info.HasSubmission() {
			info.VerificationID = NoVerificationIDPlaceholder
		}
		summary.DisabilityInformation = &info
	}
	return summary
}

func (s *DirectoryStatsService) findAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.directory.FindAll(ctx, repository.UserFilter{})
	if err != nil {
		s.logger.Error("list users", zap.Error(err))
		return nil, apperrors.NewStorageFailure(err)
	}
	return users, nil
}

// percentage formats part/total*100 with two decimals, halves rounded up.
func percentage(part, total int64) string {
	pct := float64(part) / float64(total) * 100
	return strconv.FormatFloat(math.Round(pct*100)/100, 'f', 2, 64)
}
