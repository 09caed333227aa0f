package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/gym-leadbot/internal/config"
	"github.com/xavierca1/gym-leadbot/internal/entity"
	"github.com/xavierca1/gym-leadbot/internal/infra/database"
	"github.com/xavierca1/gym-leadbot/internal/infra/session"
	"github.com/xavierca1/gym-leadbot/internal/usecase"
	"github.com/xavierca1/gym-leadbot/pkg/logger"
)

// consoleMessenger prints what would be sent over WhatsApp.
type consoleMessenger struct{}

func (consoleMessenger) SendText(_ context.Context, to, text string) error {
	fmt.Printf("🤖 → %s\n%s\n\n", to, text)
	return nil
}

func (consoleMessenger) SendImage(_ context.Context, to, imageURL, caption string) error {
	fmt.Printf("🖼️  → %s %s %s\n", to, imageURL, caption)
	return nil
}

func (consoleMessenger) SendButtons(_ context.Context, to, prompt string, options []entity.ButtonOption) error {
	fmt.Printf("🤖 → %s\n%s\n", to, prompt)
	for _, o := range options {
		fmt.Printf("   [%s] (%s)\n", o.Title, o.PostbackText)
	}
	fmt.Println()
	return nil
}

func (consoleMessenger) SendTemplate(_ context.Context, to, templateID string, params []string) error {
	fmt.Printf("📨 template %s → %s %v\n", templateID, to, params)
	return nil
}

type consoleNotifier struct{}

func (consoleNotifier) Notify(_ context.Context, a entity.OwnerAlert) error {
	fmt.Printf("🔔 owner: %s %s %s\n", a.Kind, a.Phone, a.Tier)
	return nil
}

func main() {
	phone := flag.String("phone", "919876543210", "simulated sender")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(logger.Config{Level: "warn", Format: "console"})

	content, err := config.LoadContent(os.Getenv("CONTENT_PATH"))
	if err != nil {
		fmt.Println("❌ content:", err)
		os.Exit(1)
	}

	loc, _ := time.LoadLocation("Asia/Kolkata")
	offset := time.Duration(0)
	clock := func() time.Time { return time.Now().Add(offset) }

	leads := database.NewInMemoryLeadRepository()
	messenger := consoleMessenger{}

	engine := usecase.NewHandleMessageUseCase(session.NewMemoryStore(72*time.Hour), leads, consoleNotifier{}, content, loc)
	engine.Now = clock
	followUps := usecase.NewSendFollowUpsUseCase(leads, messenger, "reminder", "review", content.ReviewLink, loc)
	followUps.Now = clock
	deliverer := usecase.NewReplyDeliverer(messenger, content)
	dedup := usecase.NewDedupGuard(session.NewMemoryFingerprints(72 * time.Hour))

	fmt.Printf("💬 chatting as %s. Commands: /advance <duration>, /followups, /lead, /quit\n\n", *phone)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for fmt.Print("> "); scanner.Scan(); fmt.Print("> ") {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/quit":
			return
		case strings.HasPrefix(line, "/advance "):
			d, err := time.ParseDuration(strings.TrimPrefix(line, "/advance "))
			if err != nil {
				fmt.Println("❌", err)
				continue
			}
			offset += d
			fmt.Printf("⏩ clock now %s\n", clock().In(loc).Format(entity.DueTimeLayout))
			continue
		case line == "/followups":
			report, err := followUps.Execute(ctx)
			if err != nil {
				fmt.Println("❌", err)
				continue
			}
			fmt.Printf("📊 %+v\n", report)
			continue
		case line == "/lead":
			lead, err := leads.FindByPhone(ctx, entity.NormalizePhone(*phone))
			if err != nil {
				fmt.Println("❌", err)
				continue
			}
			fmt.Printf("📋 %+v\n", *lead)
			continue
		}

		ev := usecase.InboundEvent{Sender: *phone, Message: line}
		if dedup.IsDuplicate(ctx, ev) {
			fmt.Println("(duplicate dropped)")
			continue
		}

		out, err := engine.Execute(ctx, usecase.HandleMessageInput{Phone: *phone, Message: line})
		if err != nil {
			fmt.Println("❌", err)
			continue
		}
		fmt.Printf("[%s → %s]\n", out.Tier, out.Session.State)
		if err := deliverer.Deliver(ctx, *phone, out.Reply); err != nil {
			fmt.Println("❌", err)
		}
	}
}
