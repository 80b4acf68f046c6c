package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/review_radar/app/review_radar/pkg/config"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/logger"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/radar"
	"github.com/iWorld-y/review_radar/app/review_radar/pkg/router"
)

var (
	configPath string
	jsonOutput bool
	htmlOutput string
	reviewsTag string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "review_radar",
		Short:        "Collect and compare customer reviews across sources",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "配置文件路径")

	search := &cobra.Command{
		Use:   "search <query>",
		Short: `Search reviews, use "A vs B" to compare two products`,
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	search.Flags().BoolVar(&jsonOutput, "json", false, "以 JSON 输出完整结果")
	search.Flags().StringVar(&htmlOutput, "html", "", "同时生成 HTML 报告到指定路径")
	search.Flags().StringVar(&reviewsTag, "reviews", "", "列出评论：all、positive、neutral、negative")

	sources := &cobra.Command{
		Use:   "sources",
		Short: "List enabled review sources",
		Args:  cobra.NoArgs,
		RunE:  runSources,
	}

	root.AddCommand(search, sources)
	return root
}

func setup(ctx context.Context) (*radar.Radar, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("无法加载配置文件: %w", err)
	}
	// JSON 输出占用标准输出
	if jsonOutput {
		logger.Console = os.Stderr
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		return nil, fmt.Errorf("无法初始化日志: %w", err)
	}
	return radar.New(ctx, cfg, radar.Options{})
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	r, err := setup(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	res, err := r.Search(ctx, args[0])
	if res == nil {
		return err
	}
	if err != nil && !errors.Is(err, router.ErrNoResults) {
		return err
	}

	if htmlOutput != "" {
		if herr := writeHTML(htmlOutput, res); herr != nil {
			return fmt.Errorf("生成 HTML 失败: %w", herr)
		}
		logger.Log.Infof("HTML 报告已生成: %s", htmlOutput)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if jerr := enc.Encode(res); jerr != nil {
			return jerr
		}
	} else {
		writeText(out, res)
		if reviewsTag != "" {
			writeReviews(out, reviewsTag, r.Filter(reviewsTag))
		}
	}
	return err
}

func runSources(cmd *cobra.Command, _ []string) error {
	r, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer r.Close()

	for _, src := range r.Sources() {
		fmt.Fprintln(cmd.OutOrStdout(), src)
	}
	return nil
}
