package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseApp    *firebase.App
	FirebaseClient *messaging.Client
	once           sync.Once
	initErr        error
	isInitialized  bool
)

// InitFirebase initializes Firebase Admin SDK and the FCM client (singleton)
func InitFirebase() error {
	if isInitialized {
		return initErr
	}

	once.Do(func() {
		ctx := context.Background()

		credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsPath == "" {
			credentialsPath = os.Getenv("FCM_CREDENTIALS_PATH")
		}
		if credentialsPath == "" {
			credentialsPath = "./serviceAccountKey.json"
		}

		projectID := os.Getenv("FCM_PROJECT_ID")

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Printf("⚠️ Firebase credentials file not found at: %s", credentialsPath)
			log.Println("ℹ️ Continuing without Firebase (push notifications disabled)")
			isInitialized = true
			initErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}

		if projectID == "" {
			isInitialized = true
			initErr = fmt.Errorf("FCM_PROJECT_ID is required for FCM")
			return
		}

		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID},
			option.WithCredentialsFile(credentialsPath))
		if err != nil {
			isInitialized = true
			initErr = fmt.Errorf("failed to initialize firebase app: %v", err)
			return
		}
		FirebaseApp = app

		client, err := app.Messaging(ctx)
		if err != nil {
			isInitialized = true
			initErr = fmt.Errorf("failed to create FCM client: %v", err)
			return
		}

		FirebaseClient = client
		isInitialized = true
		log.Printf("✅ Firebase initialized for project %s", projectID)
	})

	return initErr
}

// IsFCMEnabled reports whether push notifications can be sent
func IsFCMEnabled() bool {
	return FirebaseClient != nil
}

// GetInitError returns the initialization error, if any
func GetInitError() error {
	return initErr
}
