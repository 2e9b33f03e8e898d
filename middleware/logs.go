package middleware

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"Mydailylogs/Models"

	"github.com/gofiber/fiber/v2"
)

// LogData is one request log line.
type LogData struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latency"`
	IP        string        `json:"ip"`
	UserAgent string        `json:"user_agent"`
	UserID    uint          `json:"user_id,omitempty"`
	Username  string        `json:"username,omitempty"`
	Error     string        `json:"error,omitempty"`
}

var skipPaths = map[string]bool{
	"/health": true,
}

// RequestLogger logs every request to the console and appends the JSON form
// to logs/requests.log.
func RequestLogger() fiber.Handler {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v", err)
	}

	return func(c *fiber.Ctx) error {
		if skipPaths[c.Path()] {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		data := LogData{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    c.Response().StatusCode(),
			Latency:   time.Since(start),
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
		}
		if user, ok := c.Locals("user").(Models.User); ok {
			data.UserID = user.ID
			data.Username = user.Name
		}
		if err != nil {
			data.Error = err.Error()
		}

		log.Printf("%s %s %d %s %s", data.Method, data.Path, data.Status, data.Latency, data.IP)
		logToFile("logs/requests.log", data)
		return err
	}
}

func logToFile(path string, data LogData) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening log file: %v", err)
		return
	}
	defer file.Close()

	line, _ := json.Marshal(data)
	if _, err := file.Write(append(line, '\n')); err != nil {
		log.Printf("Error writing to log file: %v", err)
	}
}
