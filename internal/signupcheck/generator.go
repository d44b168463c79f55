package signupcheck

import (
	"context"

	"github.com/google/uuid"
	"github.com/mergington/activities/pkg/logger"
)

// generateStudents creates n unique student emails. The UUID keeps parallel
// checks against the same server from colliding.
func generateStudents(ctx context.Context, n int, stats *Stats) []string {
	logger.Get().Info(ctx, "generating students", logger.Int("students", n))

	emails := make([]string, n)
	for i := range emails {
		emails[i] = "signupcheck-" + uuid.NewString() + "@" + EmailDomain
	}
	stats.StudentsGenerated = n
	return emails
}
