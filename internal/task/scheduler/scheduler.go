package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	authrepo "lifeos-backend/internal/auth/repository"
	"lifeos-backend/internal/task/repository"
	"lifeos-backend/pkg/fcm"
)

// TaskReminderScheduler sends FCM reminders for tasks approaching their
// due date.
type TaskReminderScheduler struct {
	taskStore repository.TaskStore
	fcmRepo   authrepo.FCMTokenRepository
	fcmClient *fcm.Client
	interval  time.Duration
	window    time.Duration
	stopChan  chan struct{}
}

// NewTaskReminderScheduler creates a new scheduler
func NewTaskReminderScheduler(
	taskStore repository.TaskStore,
	fcmRepo authrepo.FCMTokenRepository,
	fcmClient *fcm.Client,
) *TaskReminderScheduler {
	return &TaskReminderScheduler{
		taskStore: taskStore,
		fcmRepo:   fcmRepo,
		fcmClient: fcmClient,
		interval:  1 * time.Minute,
		window:    1 * time.Hour, // remind when due within the hour
		stopChan:  make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *TaskReminderScheduler) Start() {
	if s.fcmClient == nil {
		log.Println("[TaskScheduler] FCM client not available, scheduler disabled")
		return
	}

	log.Println("[TaskScheduler] Starting task reminder scheduler (interval: 1 minute)")

	go func() {
		// Run immediately on start
		s.checkAndSendReminders()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.checkAndSendReminders()
			case <-s.stopChan:
				log.Println("[TaskScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *TaskReminderScheduler) Stop() {
	close(s.stopChan)
}

// checkAndSendReminders finds tasks due soon and sends FCM notifications
func (s *TaskReminderScheduler) checkAndSendReminders() {
	now := time.Now()

	tasks, err := s.taskStore.FindPendingReminders(now, s.window)
	if err != nil {
		log.Printf("[TaskScheduler] Error finding pending reminders: %v", err)
		return
	}

	if len(tasks) == 0 {
		return
	}

	log.Printf("[TaskScheduler] Found %d tasks due soon", len(tasks))

	for _, task := range tasks {
		tokens, err := s.fcmRepo.GetTokensByUserID(task.UserID)
		if err != nil {
			log.Printf("[TaskScheduler] Error getting FCM tokens for user %s: %v", task.UserID, err)
			continue
		}

		if len(tokens) == 0 {
			// Mark as sent anyway so the task is not re-checked every minute
			if err := s.taskStore.MarkReminderSent(task.ID); err != nil {
				log.Printf("[TaskScheduler] Error marking reminder as sent for task %s: %v", task.ID, err)
			}
			continue
		}

		title := "Task due soon: " + task.Title
		body := task.Description
		if body == "" {
			body = "You have a task coming due"
		}
		if task.DueDate != nil {
			body = fmt.Sprintf("%s\nDue: %s", body, task.DueDate.Format("Jan 2 15:04"))
		}

		var tokenStrings []string
		for _, t := range tokens {
			tokenStrings = append(tokenStrings, t.Token)
		}

		notification := fcm.NotificationData{
			Title: title,
			Body:  body,
			Data: map[string]string{
				"type":         "task_reminder",
				"task_id":      task.ID,
				"priority":     string(task.Priority),
				"click_action": "/tasks",
			},
		}

		failedTokens, err := s.fcmClient.SendToDevices(context.Background(), tokenStrings, notification)
		if err != nil {
			log.Printf("[TaskScheduler] Error sending reminder for task %s: %v", task.ID, err)
		} else {
			log.Printf("[TaskScheduler] Sent reminder for task '%s' to %d devices", task.Title, len(tokenStrings)-len(failedTokens))
		}

		// Cleanup failed tokens
		for _, token := range failedTokens {
			s.fcmRepo.DeleteToken(token)
		}

		// Mark reminder as sent regardless of success (to avoid spamming)
		if err := s.taskStore.MarkReminderSent(task.ID); err != nil {
			log.Printf("[TaskScheduler] Error marking reminder as sent for task %s: %v", task.ID, err)
		}
	}
}
