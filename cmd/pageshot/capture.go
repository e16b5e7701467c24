package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageshot/pageshot/capture"
	"github.com/pageshot/pageshot/config"
	"github.com/pageshot/pageshot/models"
	"github.com/pageshot/pageshot/output"
)

func newCaptureCmd() *cobra.Command {
	var (
		outputPath   string
		outputDir    string
		fullPage     bool
		width        int
		height       int
		wait         time.Duration
		scrollDelay  time.Duration
		timeout      time.Duration
		withContent  bool
		asJSON       bool
		withMarkdown bool
		withArticle  bool
		selector     string
		stealth      bool
		browserBin   string
		headed       bool
		noSandbox    bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "capture <url>",
		Short: "Capture one page: screenshot plus optional content snapshot",
		Long: `capture visits a URL once in headless Chromium, waits for the page to
settle, scrolls through it so lazy-loaded content renders, and writes a
full-page PNG. With --content (or --json, --markdown, --article,
--selector) it also extracts a structured snapshot of the same rendered
state: title, meta tags, images, headings, visible text and links.

Example:
  pageshot capture https://example.com --content
  pageshot capture https://example.com -o shot.png --width 1280 --full-page=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if verbose {
				level = "debug"
			}
			initLogger(config.LogConfig{Level: level, Format: "text"})

			url := args[0]
			req := &models.CaptureRequest{
				URL:             url,
				OutputPath:      output.Resolve(outputDir, outputPath, url),
				FullPage:        &fullPage,
				ViewportWidth:   width,
				ViewportHeight:  height,
				WaitMs:          intPtr(int(wait.Milliseconds())),
				ScrollDelayMs:   intPtr(int(scrollDelay.Milliseconds())),
				TimeoutMs:       int(timeout.Milliseconds()),
				Stealth:         stealth,
				CSSSelector:     selector,
				IncludeArticle:  withArticle,
				IncludeMarkdown: withMarkdown,
			}

			capt := capture.New(config.BrowserConfig{
				Headless:  !headed,
				NoSandbox: noSandbox,
				Bin:       browserBin,
			})

			wantSnapshot := withContent || asJSON || withMarkdown || withArticle || selector != ""

			fmt.Fprintf(cmd.ErrOrStderr(), "→ Capturing %s... ", url)
			start := time.Now()

			if !wantSnapshot {
				if err := capt.CaptureImage(cmd.Context(), req); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "failed")
					return describeFailure(err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "done (%.1fs)\n", time.Since(start).Seconds())
				fmt.Printf("✓ Screenshot saved to %s\n", req.OutputPath)
				return nil
			}

			snap, err := capt.CaptureFull(cmd.Context(), req)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "failed")
				return describeFailure(err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "done (%.1fs)\n", time.Since(start).Seconds())

			switch {
			case asJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			case withMarkdown:
				fmt.Println(snap.Markdown)
				fmt.Fprintf(cmd.ErrOrStderr(), "✓ Screenshot saved to %s\n", snap.ScreenshotPath)
			default:
				fmt.Printf("✓ Screenshot saved to %s\n", snap.ScreenshotPath)
				printSummary(snap)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output PNG path (default: derived from the URL under --output-dir)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "screenshots", "Directory for derived output paths")
	cmd.Flags().BoolVar(&fullPage, "full-page", true, "Capture the entire scrollable page")
	cmd.Flags().IntVar(&width, "width", models.DefaultViewportWidth, "Viewport width in pixels")
	cmd.Flags().IntVar(&height, "height", models.DefaultViewportHeight, "Viewport height in pixels")
	cmd.Flags().DurationVar(&wait, "wait", 3*time.Second, "Settle delay after the page load event")
	cmd.Flags().DurationVar(&scrollDelay, "scroll-delay", 500*time.Millisecond, "Pause between lazy-load scroll steps (0 disables scrolling)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Navigation timeout")
	cmd.Flags().BoolVar(&withContent, "content", false, "Extract a content snapshot and print a summary")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full snapshot as JSON")
	cmd.Flags().BoolVar(&withMarkdown, "markdown", false, "Print a Markdown rendition of the page")
	cmd.Flags().BoolVar(&withArticle, "article", false, "Include a readability article extraction in the snapshot")
	cmd.Flags().StringVar(&selector, "selector", "", "CSS selector that narrows the extracted text")
	cmd.Flags().BoolVar(&stealth, "stealth", false, "Apply anti-bot-detection evasions before navigation")
	cmd.Flags().StringVar(&browserBin, "browser-bin", "", "Chromium binary to use instead of the managed one")
	cmd.Flags().BoolVar(&headed, "headed", false, "Run the browser with a visible window")
	cmd.Flags().BoolVar(&noSandbox, "no-sandbox", false, "Disable the Chromium sandbox (required in some containers)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logging")

	return cmd
}

// describeFailure keeps the common failure modes friendly; anything else
// surfaces as-is.
func describeFailure(err error) error {
	var capErr *models.CaptureError
	if errors.As(err, &capErr) {
		switch capErr.Code {
		case models.ErrCodeTimeout:
			return fmt.Errorf("page load timed out; try a longer --timeout or check the URL")
		case models.ErrCodeBrowser:
			return fmt.Errorf("browser launch failed: %w", err)
		}
	}
	return err
}

// printSummary renders the snapshot the way a human skims a page.
func printSummary(snap *models.PageSnapshot) {
	fmt.Printf("\nTitle:  %s\n", snap.Title)
	fmt.Printf("URL:    %s\n", snap.URL)
	if snap.StatusCode != 0 {
		fmt.Printf("Status: %d\n", snap.StatusCode)
	}

	if len(snap.Meta) > 0 {
		keys := make([]string, 0, len(snap.Meta))
		for k := range snap.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Printf("\nMeta tags (%d):\n", len(snap.Meta))
		for _, k := range keys {
			fmt.Printf("  %s: %s\n", k, truncate(snap.Meta[k], 80))
		}
	}

	if len(snap.Images) > 0 {
		shown := len(snap.Images)
		if shown > 3 {
			shown = 3
			fmt.Printf("\nImages (%d, showing first 3):\n", len(snap.Images))
		} else {
			fmt.Printf("\nImages (%d):\n", len(snap.Images))
		}
		for _, img := range snap.Images[:shown] {
			if img.Alt != "" {
				fmt.Printf("  %s (alt: %s)\n", truncate(img.Src, 90), truncate(img.Alt, 40))
			} else {
				fmt.Printf("  %s\n", truncate(img.Src, 90))
			}
		}
	}

	if len(snap.Headings) > 0 {
		fmt.Println("\nHeadings:")
		for level := 1; level <= 6; level++ {
			tag := fmt.Sprintf("h%d", level)
			texts, ok := snap.Headings[tag]
			if !ok {
				continue
			}
			fmt.Printf("  %s (%d): %s\n", tag, len(texts), truncate(strings.Join(texts, " | "), 100))
		}
	}

	if total := len(snap.Links.Internal) + len(snap.Links.External); total > 0 {
		fmt.Printf("\nLinks: %d internal, %d external\n", len(snap.Links.Internal), len(snap.Links.External))
	}

	if snap.Article != nil {
		fmt.Printf("\nArticle: %s", snap.Article.Title)
		if snap.Article.Byline != "" {
			fmt.Printf(" (by %s)", snap.Article.Byline)
		}
		fmt.Println()
	}

	if snap.TextContent != "" {
		fmt.Println("\nText preview:")
		fmt.Printf("  %s\n", truncate(strings.Join(strings.Fields(snap.TextContent), " "), 300))
	}
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func intPtr(v int) *int { return &v }
