package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayusman/handsnap/internal/app"
	"github.com/ayusman/handsnap/internal/capture"
	"github.com/ayusman/handsnap/internal/config"
	"github.com/ayusman/handsnap/internal/debounce"
	"github.com/ayusman/handsnap/internal/detector"
	"github.com/ayusman/handsnap/internal/display"
	"github.com/ayusman/handsnap/internal/gesture"
	"github.com/ayusman/handsnap/internal/sink"
	"github.com/ayusman/handsnap/internal/speech"
	"github.com/ayusman/handsnap/internal/store"
)

// parseRunFlags overlays run flags onto cfg.
func parseRunFlags(cfg config.Config, args []string) (config.Config, bool, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)

	var headless bool
	fs.IntVar(&cfg.CameraID, "camera", cfg.CameraID, "camera device index")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "requested camera frame rate")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory for selfies, the log and the catalog")
	fs.DurationVar(&cfg.Hold, "hold", cfg.Hold, "how long the V sign must be held")
	fs.DurationVar(&cfg.Preview, "preview", cfg.Preview, "how long a saved selfie is shown (0 disables)")
	fs.StringVar(&cfg.QuitKey, "quit-key", cfg.QuitKey, "key that exits the loop")
	fs.BoolVar(&cfg.TimestampNames, "timestamp-names", cfg.TimestampNames, "append the capture time to filenames; false reuses selfie_<name>.png and overwrites")
	fs.BoolVar(&cfg.Mirror, "mirror", cfg.Mirror, "flip frames horizontally")
	fs.StringVar(&cfg.Classifier, "classifier", cfg.Classifier, "pose classifier: rule or template")
	fs.StringVar(&cfg.TemplatePath, "template", cfg.TemplatePath, "JSON template samples for the template classifier")
	fs.Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "template match tolerance (0 for default)")
	fs.Float64Var(&cfg.MinConfidence, "min-confidence", cfg.MinConfidence, "minimum hand detection confidence")
	fs.StringVar(&cfg.ScriptPath, "script", cfg.ScriptPath, "path to mediapipe_service.py")
	fs.StringVar(&cfg.Python, "python", cfg.Python, "python interpreter for the MediaPipe service (venv or python3 when empty)")
	fs.StringVar(&cfg.SpeechCommand, "speech", cfg.SpeechCommand, "speech synthesizer command (auto-detected when empty)")
	fs.BoolVar(&cfg.Mute, "mute", cfg.Mute, "disable spoken announcements")
	fs.BoolVar(&cfg.Catalog, "catalog", cfg.Catalog, "record captures in the SQLite catalog")
	fs.BoolVar(&headless, "headless", false, "run without a window (stop with Ctrl-C)")

	if err := fs.Parse(args); err != nil {
		return cfg, false, err
	}
	if fs.NArg() > 0 {
		return cfg, false, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, headless, cfg.Validate()
}

// buildClassifier returns the pose classifier named by cfg.
func buildClassifier(cfg config.Config) (gesture.Classifier, error) {
	switch cfg.Classifier {
	case config.ClassifierTemplate:
		if cfg.TemplatePath == "" {
			return gesture.VSignTemplate(cfg.Tolerance), nil
		}
		return gesture.LoadTemplate(cfg.TemplatePath, cfg.Tolerance)
	default:
		return gesture.VSign{}, nil
	}
}

// buildSpeaker returns the announcement speaker, falling back to silence.
func buildSpeaker(cfg config.Config) speech.Speaker {
	if cfg.Mute {
		return speech.Silent{}
	}
	s, err := speech.New(cfg.SpeechCommand)
	if err != nil {
		log.Printf("[WARN] Speech disabled: %v", err)
	}
	return s
}

func runCommand(cfg config.Config, args []string) error {
	cfg, headless, err := parseRunFlags(cfg, args)
	if err != nil {
		return err
	}

	classifier, err := buildClassifier(cfg)
	if err != nil {
		return err
	}

	detCfg := detector.DefaultConfig()
	detCfg.MinConfidence = cfg.MinConfidence
	detCfg.ScriptPath = cfg.ScriptPath
	detCfg.Python = cfg.Python
	det, err := detector.NewMediaPipeDetector(detCfg)
	if err != nil {
		return fmt.Errorf("hand detector: %w", err)
	}
	log.Println("Using MediaPipe hand detection")

	speaker := buildSpeaker(cfg)

	var catalog sink.Catalog
	if cfg.Catalog {
		st, err := store.New(cfg.DBPath())
		if err != nil {
			det.Close()
			return fmt.Errorf("open catalog: %w", err)
		}
		defer st.Close()
		log.Printf("Recording captures in %s", st.Path())
		catalog = st.Captures()
	}

	var (
		disp     app.Display
		prompter sink.Prompter = sink.NewTerminalPrompter(os.Stdin, os.Stdout)
	)
	if !headless {
		win := display.NewWindow(display.MainTitle)
		disp = win
		prompter = win.Prompter()
	}

	snk := sink.New(sink.Options{
		Dir:            cfg.OutputDir,
		TimestampNames: cfg.TimestampNames,
		Prompter:       prompter,
		Speaker:        speaker,
		Catalog:        catalog,
	})
	log.Printf("Saving selfies to %s", snk.Dir())

	cam := capture.NewCamera(cfg.CameraID)
	cam.SetFPS(cfg.FPS)

	a := app.New(app.Config{
		Camera:     cam,
		Detector:   det,
		Classifier: classifier,
		Sink:       snk,
		Speaker:    speaker,
		Display:    disp,
		Debounce:   debounce.Config{Hold: cfg.Hold},
		Mirror:     cfg.Mirror,
		QuitKey:    rune(cfg.QuitKey[0]),
		Preview:    cfg.Preview,
	})
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("Error releasing resources: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		return err
	}
	log.Printf("Took %d selfies", a.Captures())
	return nil
}
