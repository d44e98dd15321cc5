package impl

import (
	"fmt"
	"strings"
	"time"

	"github.com/evkuzin/growstation/humidity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const avgStats = "avg stats"

var buttons = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton("now"),
		tgbotapi.NewKeyboardButton(avgStats),
	),
)

func (ws *weatherStationImpl) telegramStart() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := ws.tg.GetUpdatesChan(u)
	for update := range updates {
		if update.Message == nil {
			continue
		}
		if update.Message.From != nil {
			ws.logger.Infof("[%s] %s", update.Message.From.UserName, update.Message.Text)
		}
		msg := tgbotapi.NewMessage(update.Message.Chat.ID, ws.reply(update.Message.Text))
		msg.ReplyToMessageID = update.Message.MessageID
		msg.ReplyMarkup = buttons

		if _, err := ws.tg.Send(msg); err != nil {
			ws.logger.Warnf("error: %s", err)
		}
	}
}

// reply answers a chat message from the history, or from the archive for
// averages.
func (ws *weatherStationImpl) reply(text string) string {
	if strings.EqualFold(strings.TrimSpace(text), avgStats) {
		return ws.averages()
	}
	entry, ok := ws.history.Latest()
	if !ok {
		return "No data"
	}
	return formatMeasurement("Current", entry.Result) +
		fmt.Sprintf("Taken: %s\n", entry.Time.Format(time.RFC3339))
}

func (ws *weatherStationImpl) averages() string {
	if ws.Storage == nil {
		return "Averages need the database archive enabled"
	}
	var b strings.Builder
	for _, window := range []struct {
		name string
		d    time.Duration
	}{
		{"12h avg", 12 * time.Hour},
		{"6h avg", 6 * time.Hour},
		{"1h avg", time.Hour},
	} {
		avg, err := ws.Storage.GetAvg(window.d)
		if err != nil {
			ws.logger.Warnf("cannot get average: %s", err)
			fmt.Fprintf(&b, "%s: unavailable\n", window.name)
			continue
		}
		b.WriteString(formatMeasurement(window.name, avg))
	}
	return b.String()
}

func formatMeasurement(label string, m humidity.Measurement) string {
	env := m.Env()
	return fmt.Sprintf("%s: %s, %s\n", label, env.Temperature, env.Humidity)
}
