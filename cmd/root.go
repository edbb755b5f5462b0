package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/they4kman/termsweep/director/constraint"
	"github.com/they4kman/termsweep/director/random"
	"github.com/they4kman/termsweep/game"
)

var (
	log = logrus.New()

	loggers = []*logrus.Logger{log, game.Log, random.Log, constraint.Log}

	v          = viper.New()
	configPath string
	logLevel   = logLevelValue(logrus.WarnLevel)
	director   directorValue
)

var rootCmd = &cobra.Command{
	Use:   "termsweep [n]",
	Short: "Play Minesweeper in the terminal",
	Long: `termsweep is a text-mode Minesweeper game. Cells are chosen by
typing a 1-based row,col at the prompt.

Play on a 5x5 board with 5 mines
	termsweep

Use n to set both the board size and the number of mines
	termsweep 8

Use the director flag to make the computer play for you, picking cells at
random or reasoning from the numbers
	termsweep -d
	termsweep --director=constraint
`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// runRoot is attached in init; referencing it from the rootCmd literal would
// form an initialization cycle through loadConfig.
func runRoot(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	if err := setupLogging(); err != nil {
		return err
	}

	config, err := gameConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := game.Run(ctx, config)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"state": result.State,
		"moves": result.Moves,
	}).Debug("exiting")
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig() error {
	v.SetEnvPrefix("termsweep")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(rootCmd.Flags()); err != nil {
		return err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", configPath)
		}
	}
	return nil
}

func setupLogging() error {
	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}

	var hook logrus.Hook
	if path := v.GetString("log-file"); path != "" {
		hook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   path,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return errors.Wrapf(err, "open log file %s", path)
		}
	}

	for _, logger := range loggers {
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		logger.SetLevel(level)
		if hook != nil {
			logger.AddHook(hook)
		}
	}

	log.WithFields(logrus.Fields{
		"config": v.ConfigFileUsed(),
		"level":  level,
	}).Debug("logging ready")
	return nil
}

func gameConfig(cmd *cobra.Command, args []string) (game.GameConfig, error) {
	config := game.NewGameConfig()

	config.Size = v.GetInt("size")
	config.NumMines = v.GetInt("mines")
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return config, errors.Errorf("n must be a number, got %q", args[0])
		}
		if !cmd.Flags().Changed("size") {
			config.Size = n
		}
		if !cmd.Flags().Changed("mines") {
			config.NumMines = n
		}
	}

	config.Seed = v.GetInt64("seed")
	config.HistoryLen = v.GetInt("history")

	if path := v.GetString("layout"); path != "" {
		in, err := os.ReadFile(path)
		if err != nil {
			return config, err
		}
		config.Layout, err = game.LoadLayout(string(in))
		if err != nil {
			return config, errors.Wrapf(err, "load layout %s", path)
		}
	}

	player, err := newDirector(v.GetString("director"))
	if err != nil {
		return config, err
	}
	config.Director = player

	return config, nil
}

func init() {
	rootCmd.RunE = runRoot

	defaults := game.NewGameConfig()

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().IntP("size", "s", defaults.Size, "Width and height of the game board, in cells")
	rootCmd.Flags().IntP("mines", "m", defaults.NumMines, "Number of mines to place in the game board")
	rootCmd.Flags().Int64("seed", 0, "Seed for mine placement (0 picks one at random)")
	rootCmd.Flags().String("layout", "", "YAML file with a fixed mine layout to play")
	rootCmd.Flags().Int("history", defaults.HistoryLen, "Number of recent moves recorded in the end-of-game log entry")
	rootCmd.Flags().VarP(&director, "director", "d", "Make the computer play: random or constraint")
	rootCmd.Flags().Lookup("director").NoOptDefVal = "random"
	rootCmd.Flags().Var(&logLevel, "log-level", `Log level: panic, fatal, error, warn, info, debug or trace`)
	rootCmd.Flags().String("log-file", "", "Also write JSON logs to this file, rotated by size")
}
