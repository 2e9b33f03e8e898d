package Controllers

import (
	"crypto/subtle"
	"log"
	"os"
	"time"

	"Mydailylogs/Scheduler"

	"github.com/gofiber/fiber/v2"
)

// CronController exposes the daily engine to an external scheduler.
type CronController struct {
	Engine *Scheduler.Engine
}

func NewCronController(engine *Scheduler.Engine) *CronController {
	return &CronController{Engine: engine}
}

// TriggerDaily runs the whole daily maintenance pipeline and returns the
// structured summary. The caller authenticates with the shared CRON_SECRET,
// via the X-Cron-Secret header or a secret query parameter. An unset secret
// is tolerated for non-production setups, loudly.
func (cc *CronController) TriggerDaily(ctx *fiber.Ctx) error {
	configured := os.Getenv("CRON_SECRET")
	if configured == "" {
		log.Println("WARNING: CRON_SECRET is not set - the daily trigger endpoint is unauthenticated")
	} else {
		provided := ctx.Get("X-Cron-Secret")
		if provided == "" {
			provided = ctx.Query("secret")
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid cron secret",
			})
		}
	}

	summary := cc.Engine.RunDaily(time.Now())
	return ctx.JSON(summary)
}
