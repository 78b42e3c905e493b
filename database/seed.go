package database

import (
	"encoding/json"

	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedSubscriptionPlans inserts the two plan catalog rows when missing.
func SeedSubscriptionPlans(db *gorm.DB) error {
	plans := []struct {
		code  models.SubscriptionPlanCode
		price string
		perks []string
	}{
		{
			code:  models.PlanTwentyToken,
			price: "250",
			perks: []string{
				"20 application tokens",
				"Apply to any open job",
				"Tokens refreshed on plan renewal",
			},
		},
		{
			code:  models.PlanUnlimitedToken,
			price: "500",
			perks: []string{
				"Unlimited applications",
				"No token accounting",
				"Priority listing in applicant views",
			},
		},
	}

	for _, p := range plans {
		var count int64
		if err := db.Model(&models.Subscription{}).
			Where("plan = ?", p.code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		perksJSON, err := json.Marshal(p.perks)
		if err != nil {
			return err
		}

		plan := &models.Subscription{
			Plan:        p.code,
			Description: datatypes.JSON(perksJSON),
			Price:       p.price,
			Status:      "active",
		}
		if err := db.Create(plan).Error; err != nil {
			return err
		}
	}
	return nil
}
