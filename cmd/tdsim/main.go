// tdsim 塔防模拟核心的命令行入口
//
// 用法:
//
//	tdsim simulate --duration 120   无界面固定步长模拟，结束时输出统计
//	tdsim play                      桌面窗口（鼠标放置墙、塔、出生点和终点）
//	tdsim watch                     终端观察器
//
// 全局参数:
//
//	--config <path>  游戏配置 YAML，默认使用内置配置
//	--seed <value>   随机种子，0 表示按当前时间
//	--verbose        输出 debug 日志
//	--tower <t@x,y>  每局开始时放置的塔，可重复，如 --tower laser@3,5 --tower mortar@7,5
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagSeed    int64
	flagVerbose bool
	flagTowers  []string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tdsim",
	Short:         "Tower defense simulation core",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML (default: built-in config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringArrayVar(&flagTowers, "tower", nil, "Tower placed at every game start as type@x,y (repeatable)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
}

// newLogger 按 --verbose 创建日志器
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig 读取 --config，未指定时返回默认配置
func loadConfig(path string) (*config.GameConfig, error) {
	if path == "" {
		return config.DefaultGameConfig(), nil
	}
	return config.LoadGameConfig(path)
}

// newGame 按全局参数创建游戏
func newGame(logger *log.Logger) (*game.Game, error) {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := addTowers(cfg, flagTowers); err != nil {
		return nil, err
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("creating game", "seed", seed, "board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height))
	return game.NewGame(cfg, rand.New(rand.NewSource(seed)), logger)
}

// addTowers 把 --tower 描述追加到开局布局
func addTowers(cfg *config.GameConfig, specs []string) error {
	for _, spec := range specs {
		p, err := config.ParseTowerPlacement(spec)
		if err != nil {
			return fmt.Errorf("invalid --tower: %w", err)
		}
		cfg.Board.Towers = append(cfg.Board.Towers, p)
	}
	return nil
}
