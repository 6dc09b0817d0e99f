// Copyright 2024 Alexander Getmansky <alex@getsky.tech>
// Licensed under the Apache License, Version 2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GetSky/SunlightWatch/config"
	"github.com/GetSky/SunlightWatch/internal/application"
	"github.com/GetSky/SunlightWatch/internal/infrastructure"
	"github.com/GetSky/SunlightWatch/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sunlight-watch",
		Short: "Daylight and night tracker",
		Long:  "Tells whether the sun is up at a location and reports day/night changes",
	}

	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func statusCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the current sunlight state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cnf, err := config.NewConf()
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cnf.LogLevel)
			sunlight := newSunlight(cnf, logger, nil)

			opts := options(cnf)
			if at != "" {
				ref, err := time.ParseInLocation(time.DateTime, at, time.Local)
				if err != nil {
					return fmt.Errorf("failed to parse --at: %w", err)
				}
				opts.ReferenceTime = ref
			} else {
				opts.ReferenceTime = time.Now()
			}

			st := sunlight.Status(cmd.Context(), opts)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "time:          %s\n", st.ReferenceTime.Format("2006-01-02 15:04 MST"))
			fmt.Fprintf(out, "location:      %.4f, %.4f (%s)\n", st.Location.Latitude, st.Location.Longitude, st.Source)
			fmt.Fprintf(out, "after sunrise: %t\n", st.AfterSunrise)
			fmt.Fprintf(out, "after sunset:  %t\n", st.AfterSunset)
			fmt.Fprintf(out, "daylight:      %t\n", st.Daylight)
			fmt.Fprintf(out, "night:         %t\n", st.Night)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "reference time as \"YYYY-MM-DD HH:MM:SS\" in local time")

	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll the sunlight state and notify on changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cnf, err := config.NewConf()
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cnf.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
			sunlight := newSunlight(cnf, logger, metrics)

			notifiers, err := newNotifiers(cnf, logger)
			if err != nil {
				return err
			}

			tracker := application.NewSunlightTracker(ctx, sunlight, cnf.PollInterval, options(cnf))
			metrics.SetDaylight(tracker.IsDaylight())
			tracker.
				OnDaylight(func() {
					logger.Info().Msg("sunrise")
				}).
				OnNight(func() {
					logger.Info().Msg("sunset")
				}).
				Notify(notifiers...)

			if cnf.MetricsAddr != "" {
				srv := &http.Server{Addr: cnf.MetricsAddr, Handler: promhttp.Handler(), ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error().Err(err).Msg("metrics server error")
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
				logger.Info().Str("addr", cnf.MetricsAddr).Msg("metrics enabled")
			}

			return tracker.Run(ctx)
		},
	}
}

func newSunlight(cnf *config.Conf, logger zerolog.Logger, recorder application.Recorder) *application.Sunlight {
	var geolocator application.Geolocator
	if cnf.UseGeolocation {
		geolocator = infrastructure.NewGeolocationService(cnf.GeolocationUrl, cnf.GeolocationTimeout)
	}

	return application.NewSunlight(application.SunlightConfig{
		Ephemeris:  infrastructure.NewEphemerisService(cnf.Height),
		Geolocator: geolocator,
		Logger:     logger,
		Recorder:   recorder,
	})
}

func newNotifiers(cnf *config.Conf, logger zerolog.Logger) ([]application.NotifyService, error) {
	var notifiers []application.NotifyService

	if cnf.TelegramEnabled() {
		telegram, err := infrastructure.NewTelegramNotifyService(cnf.BotToken, cnf.TelegramChat)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, telegram)
	}

	if cnf.MQTTEnabled() {
		mqtt, err := infrastructure.NewMQTTNotifyService(infrastructure.MQTTConfig{
			Broker:      cnf.MQTTBroker,
			ClientID:    cnf.MQTTClientID,
			Username:    cnf.MQTTUsername,
			Password:    cnf.MQTTPassword,
			TopicPrefix: cnf.MQTTTopicPrefix,
		}, logger)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, mqtt)
	}

	return notifiers, nil
}

func options(cnf *config.Conf) application.Options {
	return application.Options{
		Latitude:       cnf.Latitude,
		Longitude:      cnf.Longitude,
		UseGeolocation: cnf.UseGeolocation,
	}
}
