package main

import (
	"log"
	"os"

	"Mydailylogs/CronJobs"
	"Mydailylogs/FiberConfig"
	"Mydailylogs/Models"
	"Mydailylogs/Notifications"
	"Mydailylogs/Scheduler"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	setupLogging()

	Models.Connect()

	if err := Notifications.InitFirebase(); err != nil {
		log.Printf("Failed to initialize Firebase: %v", err)
	}

	engine := Scheduler.NewEngine(Models.DB, Notifications.NewService(Models.DB))

	runner := CronJobs.NewDailyRunner(engine, os.Getenv("RUN_MAINTENANCE_ON_START") == "true")
	if err := runner.Start(); err != nil {
		log.Printf("Failed to start daily scheduler: %v", err)
	}

	FiberConfig.FiberConfig(engine)
}

func setupLogging() {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	logFile, err := os.OpenFile("logs/application.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}

	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime)
}
