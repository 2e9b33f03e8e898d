package Notifications

import (
	"context"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var firebaseClient *messaging.Client
var ctx = context.Background()

// InitFirebase sets up the FCM client from the service account file named by
// FIREBASE_CREDENTIALS_FILE. An unset path disables push delivery; in-app
// rows and email keep working.
func InitFirebase() error {
	credentials := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	if credentials == "" {
		log.Println("FIREBASE_CREDENTIALS_FILE not set, push notifications disabled")
		return nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentials))
	if err != nil {
		return fmt.Errorf("error initializing Firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting Messaging client: %w", err)
	}

	firebaseClient = client
	log.Println("Firebase initialized successfully")
	return nil
}

// sendPush mirrors one in-app notification to the user's device. A nil
// client or empty token is a silent no-op.
func sendPush(token, notifType, title, body string) error {
	if firebaseClient == nil || token == "" {
		return nil
	}

	message := &messaging.Message{
		Token: token,
		Data: map[string]string{
			"type": notifType,
		},
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
			Priority: "high",
		},
	}

	response, err := firebaseClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending Firebase message: %w", err)
	}
	log.Printf("Successfully sent push notification: %s", response)
	return nil
}
