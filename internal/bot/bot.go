package bot

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	goaway "github.com/TwiN/go-away"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/windoze95/lookforrecipes/internal/config"
	"github.com/windoze95/lookforrecipes/internal/logger"
	"github.com/windoze95/lookforrecipes/internal/models"
	"github.com/windoze95/lookforrecipes/internal/service"
	"go.uber.org/zap"
)

// Client is the subset of the Telegram Bot API the bot uses.
// *tgbotapi.BotAPI satisfies it.
type Client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// recipeFalsePositives are dish and ingredient names that contain a word from
// goaway.DefaultProfanities. The detector matches substrings after dropping
// spaces, so multi-word dishes are listed without them.
var recipeFalsePositives = []string{
	"assorted",
	"cheeseball",
	"cockle",
	"coarse",
	"cumin",
	"faggot",
	"fagioli",
	"hoecake",
	"jerkchicken",
	"jerkpork",
	"meatball",
	"muffin",
	"petit",
	"pissaladiere",
	"rapeseed",
	"sassafras",
	"spotteddick",
	"turnip",
}

func newCaptionFilter() *goaway.ProfanityDetector {
	return goaway.NewProfanityDetector().
		WithSanitizeLeetSpeak(true).
		WithSanitizeSpecialCharacters(true).
		WithSanitizeAccents(false).
		WithCustomDictionary(
			goaway.DefaultProfanities,
			slices.Concat(goaway.DefaultFalsePositives, recipeFalsePositives),
			goaway.DefaultFalseNegatives,
		)
}

// Bot answers chat messages with recipe clips.
type Bot struct {
	Client        Client
	Search        *service.SearchService
	Delivery      *service.DeliveryService
	Messages      *config.Messages
	MaxCandidates int
	Logger        *zap.Logger

	profanity *goaway.ProfanityDetector
	inflight  sync.WaitGroup
}

// NewBot creates a new Bot.
func NewBot(cfg *config.Config, client Client, search *service.SearchService, delivery *service.DeliveryService, log *zap.Logger) *Bot {
	msgs := cfg.Messages
	if msgs == nil {
		msgs = config.DefaultMessages()
	}
	return &Bot{
		Client:        client,
		Search:        search,
		Delivery:      delivery,
		Messages:      msgs,
		MaxCandidates: cfg.MaxCandidates(),
		Logger:        logger.OrNop(log),
		profanity:     newCaptionFilter(),
	}
}

// HandleUpdate processes one inbound update. /help and /start get the help
// text; any other text is treated as a search keyword.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	recipient := models.Recipient(msg.Chat.ID)

	if isHelpCommand(msg) {
		b.sendHelp(recipient)
		return
	}

	keyword := strings.ToLower(strings.TrimSpace(msg.Text))
	if keyword == "" {
		return
	}
	b.HandleSearch(ctx, recipient, keyword)
}

// HandleSearch finds candidates for keyword and delivers the first one that
// Telegram accepts, or the no-results message.
func (b *Bot) HandleSearch(ctx context.Context, recipient models.Recipient, keyword string) models.DeliveryOutcome {
	if _, err := b.Client.Request(tgbotapi.NewChatAction(int64(recipient), tgbotapi.ChatUploadPhoto)); err != nil {
		b.Logger.Warn("failed to send chat action", zap.Int64("recipient", int64(recipient)), zap.Error(err))
	}

	candidates := b.Search.FindCandidates(ctx, keyword, b.MaxCandidates)
	outcome := b.Delivery.Deliver(ctx, candidates, recipient, b.sendClip, b.sendNoResults)

	b.Logger.Info("search request handled",
		zap.Int64("recipient", int64(recipient)),
		zap.String("keyword", keyword),
		zap.Stringer("outcome", outcome),
	)
	return outcome
}

// Dispatch handles update on its own goroutine. Use Wait to block until
// every dispatched update has been handled.
func (b *Bot) Dispatch(ctx context.Context, update tgbotapi.Update) {
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		b.HandleUpdate(ctx, update)
	}()
}

// Wait blocks until all dispatched updates are handled. Callers must stop
// dispatching first.
func (b *Bot) Wait() {
	b.inflight.Wait()
}

// Poll dispatches updates from a long-polling channel until ctx is done or
// the channel closes, then waits for in-flight updates.
func (b *Bot) Poll(ctx context.Context, updates <-chan tgbotapi.Update) {
	defer b.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.Dispatch(ctx, update)
		}
	}
}

// RegisterWebhook points Telegram at url for update delivery.
func (b *Bot) RegisterWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := b.Client.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	b.Logger.Info("webhook registered")
	return nil
}

// RemoveWebhook clears any webhook so long polling can receive updates.
func (b *Bot) RemoveWebhook() error {
	if _, err := b.Client.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return nil
}

func (b *Bot) sendClip(ctx context.Context, recipient models.Recipient, c models.Candidate) error {
	caption, err := b.caption(c)
	if err != nil {
		return err
	}

	video := tgbotapi.NewVideo(int64(recipient), tgbotapi.FileURL(c.ClipURL))
	video.Caption = caption
	video.ParseMode = tgbotapi.ModeMarkdown

	_, err = b.Client.Send(video)
	return err
}

func (b *Bot) sendNoResults(ctx context.Context, recipient models.Recipient) {
	b.sendText(recipient, b.Messages.NoResults)
}

func (b *Bot) sendHelp(recipient models.Recipient) {
	b.sendText(recipient, b.Messages.Help)
}

func (b *Bot) sendText(recipient models.Recipient, text string) {
	msg := tgbotapi.NewMessage(int64(recipient), text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.Client.Send(msg); err != nil {
		b.Logger.Error("failed to send message", zap.Int64("recipient", int64(recipient)), zap.Error(err))
	}
}

// caption links the clip to its original post. Titles come from strangers,
// so profanity is censored and Markdown control characters are escaped.
func (b *Bot) caption(c models.Candidate) (string, error) {
	title := b.profanity.Censor(c.Title)
	title = tgbotapi.EscapeText(tgbotapi.ModeMarkdown, title)
	return b.Messages.RenderCaption(title, c.SourceURL)
}

func isHelpCommand(msg *tgbotapi.Message) bool {
	if !msg.IsCommand() {
		return false
	}
	switch msg.Command() {
	case "help", "start":
		return true
	}
	return false
}
