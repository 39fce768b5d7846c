package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/JDR69/DeporteDubss/models"
	"github.com/JDR69/DeporteDubss/storage"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func validateChampionshipDates(start, end *time.Time) error {
	if start == nil {
		return ErrChampionshipDatesRequired
	}
	if end != nil && !start.Before(*end) {
		return fmt.Errorf("%w: start %s, end %s",
			ErrInvalidDateRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

// isValidStatusTransition allows the linear pending -> in_progress -> finished
// flow; finished is terminal.
func isValidStatusTransition(current, next models.ChampionshipStatus) bool {
	if current == next {
		return true
	}
	allowed := map[models.ChampionshipStatus][]models.ChampionshipStatus{
		models.ChampionshipPending:    {models.ChampionshipInProgress},
		models.ChampionshipInProgress: {models.ChampionshipFinished},
		models.ChampionshipFinished:   {},
	}
	for _, status := range allowed[current] {
		if next == status {
			return true
		}
	}
	return false
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

func populateChampionshipLogoURL(c *models.Championship, uploader storage.FileUploader) {
	if c != nil && c.LogoKey != nil && *c.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*c.LogoKey)
		if url != "" {
			c.LogoURL = &url
		}
	}
}

func sanitizeUser(user *models.User) {
	if user != nil {
		user.PasswordHash = ""
	}
}

// GetExtensionFromContentType maps an image MIME type to a file extension for
// uploaded logos.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type: %q", contentType)
	}
}
