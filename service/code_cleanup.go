package service

import (
	"time"

	"bitwise74/matrix-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CodeCleanup defines a function used to periodically clear verification
// codes whose expiry passed without any verify attempt, so no account is
// left with a stale pending code
func CodeCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Code cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			res := db.
				Model(model.User{}).
				Where("verification_code IS NOT NULL AND verification_code_expires < ?", time.Now()).
				Updates(map[string]any{
					"verification_code":         nil,
					"verification_code_expires": nil,
				})
			if res.Error != nil {
				zap.L().Error("Failed to clear expired verification codes", zap.Error(res.Error))
				continue
			}

			if res.RowsAffected > 0 {
				zap.L().Debug("Cleared expired verification codes", zap.Int64("count", res.RowsAffected))
			}
		}
	}()
}
