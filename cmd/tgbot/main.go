package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	settling "Clarifier/internal/calc/settling"
	"Clarifier/internal/config"
	"Clarifier/internal/i18n"
	"Clarifier/internal/logging"
)

type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	From      *User  `json:"from"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type User struct {
	ID           int64  `json:"id"`
	LanguageCode string `json:"language_code"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type UpdateResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

const apiBase = "https://api.telegram.org/bot"

type bot struct {
	token   string
	lang    string
	engine  *settling.Engine
	catalog *i18n.Catalog
	client  *http.Client
}

func main() {
	cfg, err := config.Load(os.Getenv("CLARIFIER_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logging.Init(cfg.Debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logging.Sync()
	log := logging.Get()

	token := os.Getenv("TOKEN_BOT")
	if token == "" {
		log.Fatal("TOKEN_BOT missing")
	}
	e, err := settling.New(cfg.Area)
	if err != nil {
		log.Fatalw("engine", "error", err)
	}
	b := &bot{
		token:   token,
		lang:    cfg.Lang,
		engine:  e,
		catalog: i18n.Default(),
		client:  &http.Client{Timeout: 30 * time.Second},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infow("bot polling", "area", cfg.Area, "lang", cfg.Lang)
	offset := 0
	for ctx.Err() == nil {
		updates, err := b.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Warnw("getUpdates", "error", err)
			time.Sleep(2 * time.Second)
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message == nil || u.Message.Text == "" {
				continue
			}
			lang := b.lang
			if u.Message.From != nil && u.Message.From.LanguageCode != "" {
				lang = u.Message.From.LanguageCode
			}
			text := reply(b.engine, b.catalog, lang, u.Message.Text)
			if text == "" {
				continue
			}
			if err := b.sendMessage(ctx, u.Message.Chat.ID, text); err != nil {
				log.Warnw("sendMessage", "chat", u.Message.Chat.ID, "error", err)
			}
		}
	}
	log.Info("bot stopped")
}

const usage = "/check <mlss> <flow>  check an operating point\n/slr <mlss> <flow>  solids loading rate"

// reply builds the answer to one chat message, or "" for messages that are
// not commands.
func reply(e *settling.Engine, c *i18n.Catalog, lang, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	// "/check@SomeBot" in group chats
	cmd, _, _ := strings.Cut(fields[0], "@")
	lang = c.Resolve(lang)

	switch cmd {
	case "/start", "/help":
		return usage
	case "/check", "/slr":
		if len(fields) != 3 {
			return usage
		}
		mlss, err1 := strconv.ParseFloat(fields[1], 64)
		flow, err2 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil {
			return usage
		}
		if cmd == "/slr" {
			return fmt.Sprintf("SLR = %.2f kg/h/m²", e.CalculateSLR(mlss, flow))
		}
		return formatVerdict(c, lang, e.CheckOperatingPoint(mlss, flow))
	}
	return usage
}

func formatVerdict(c *i18n.Catalog, lang string, v settling.Verdict) string {
	var sb strings.Builder
	for _, cl := range []settling.Classification{v.MLSS, v.EquivalentFlow, v.SLR} {
		fmt.Fprintf(&sb, "%s: %.2f %s (%s)\n",
			c.Parameter(lang, string(cl.Parameter)), cl.Value, cl.Parameter.Unit(), c.Status(lang, cl.Status))
	}
	icon := "✅"
	if !v.OverallSafe {
		icon = "⚠️"
	}
	fmt.Fprintf(&sb, "%s %s\n", icon, c.Overall(lang, v.OverallSafe))
	for _, m := range i18n.Messages(c, lang, v.Recommendations) {
		fmt.Fprintf(&sb, "• %s\n", m)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *bot) getUpdates(ctx context.Context, offset int) ([]Update, error) {
	url := fmt.Sprintf("%s%s/getUpdates?timeout=20&offset=%d", apiBase, b.token, offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out UpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("getUpdates: telegram returned %s", res.Status)
	}
	return out.Result, nil
}

func (b *bot) sendMessage(ctx context.Context, chatID int64, text string) error {
	url := fmt.Sprintf("%s%s/sendMessage", apiBase, b.token)
	payload := map[string]any{"chat_id": chatID, "text": text}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := b.client.Do(req)
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("sendMessage: %s", res.Status)
	}
	return nil
}
