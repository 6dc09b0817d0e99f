package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/GetSky/SunlightWatch/internal/application"
	"github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, f.err
}

func TestTelegramNotifyService_NotifyTransition(t *testing.T) {
	bot := &fakeSender{}
	srv := &telegramNotifyService{
		bot:          bot,
		telegramChat: 42,
	}
	loc := application.Location{Latitude: 43.649329, Longitude: 41.426829}
	at := time.Date(2024, time.June, 21, 4, 12, 0, 0, time.UTC)

	require.NoError(t, srv.NotifyTransition(true, loc, at))
	require.NoError(t, srv.NotifyTransition(false, application.Location{Latitude: -33.8688, Longitude: 151.2093}, at.Add(15*time.Hour)))
	require.Len(t, bot.sent, 2)

	day, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), day.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, day.ParseMode)
	assert.Contains(t, day.Text, "*Daylight*")
	assert.Contains(t, day.Text, "43.6493, 41.4268")
	assert.Contains(t, day.Text, "04:12 UTC")

	night, ok := bot.sent[1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, night.Text, "*Night*")
	assert.Contains(t, night.Text, "19:12 UTC")
	assert.Contains(t, night.Text, "-33.8688, 151.2093")
}

func TestTelegramNotifyService_SendError(t *testing.T) {
	srv := &telegramNotifyService{bot: &fakeSender{err: errors.New("forbidden")}}

	err := srv.NotifyTransition(true, application.Location{}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
}

func TestNewTelegramNotifyService_BadChat(t *testing.T) {
	_, err := NewTelegramNotifyService("token", "not-a-number")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "receiverKey")
}

func TestTelegramNotifyService_ReportsGeolocatedPosition(t *testing.T) {
	geo := newGeolocationServer(t, http.StatusOK, `{"status":"success","lat":59.9343,"lon":30.3351}`)
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.March, 20, 2, 0, 0, 0, time.UTC))
	s := application.NewSunlight(application.SunlightConfig{
		Ephemeris:  NewEphemerisService(0),
		Geolocator: NewGeolocationService(geo.URL, time.Second),
		Clock:      clock,
		Logger:     zerolog.Nop(),
	})

	bot := &fakeSender{}
	srv := &telegramNotifyService{bot: bot, telegramChat: 42}

	tracker := application.NewSunlightTracker(context.Background(), s, time.Minute, application.Options{UseGeolocation: true}).Notify(srv)
	require.False(t, tracker.IsDaylight())

	clock.Advance(8 * time.Hour)
	tracker.Check(context.Background())
	require.True(t, tracker.IsDaylight())
	require.Len(t, bot.sent, 1)

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "*Daylight*")
	assert.Contains(t, msg.Text, "59.9343, 30.3351")
	assert.Contains(t, msg.Text, "10:00 UTC")
}
