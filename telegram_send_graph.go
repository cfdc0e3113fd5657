package main

import (
	"fmt"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
)

// Telegram compresses photos above this size badly, larger charts go out as documents.
const maxSizePhoto = 150000

// maxMessageText keeps a <pre> block under Telegram's 4096 character limit.
const maxMessageText = 4000

// htmlEscaper escapes the characters Telegram's HTML mode reserves.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// sender is the part of the bot API used for replies.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

func (b *telegramBot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Warn("send message", zap.Int64("chat", chatID), zap.Error(err))
	}
}

// sendPre sends text as preformatted HTML, or as a .txt document when it is too long for a message.
func (b *telegramBot) sendPre(chatID int64, name, text string) {
	if len(text) > maxMessageText {
		b.sendFile(chatID, artifact{Name: name, Caption: "report", Bytes: []byte(text)})
		return
	}
	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+htmlEscaper.Replace(text)+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send report", zap.Int64("chat", chatID), zap.Error(err))
	}
}

// sendFile sends a PNG as a photo when it is small enough, everything else as a document.
func (b *telegramBot) sendFile(chatID int64, a artifact) {
	file := tgbotapi.FileBytes{Name: a.Name, Bytes: a.Bytes}

	var msg tgbotapi.Chattable
	if filepath.Ext(a.Name) == ".png" && len(a.Bytes) < maxSizePhoto {
		photo := tgbotapi.NewPhotoUpload(chatID, file)
		photo.Caption = a.Caption
		msg = photo
	} else {
		doc := tgbotapi.NewDocumentUpload(chatID, file)
		doc.Caption = a.Caption
		msg = doc
	}
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("send chart", zap.String("file", a.Name), zap.Int("bytes", len(a.Bytes)), zap.Error(err))
		b.reply(chatID, fmt.Sprintf("Could not send %s: %v", a.Name, err))
	}
}
