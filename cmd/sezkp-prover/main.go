// Command sezkp-prover is the CLI harness over the streaming prover façade
// (C9): it reads a σ_k container and a manifest container, drives either
// the stark or fold backend through internal/sezkp/prover, and writes the
// resulting proof artifact to stdout — or, given a prior artifact, verifies
// one back. Diagnostics go to stderr, matching the teacher's own
// logStderr/fatal flow.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/logannye/sezkp/internal/sezkp/config"
	"github.com/logannye/sezkp/internal/sezkp/container"
	"github.com/logannye/sezkp/internal/sezkp/core"
	"github.com/logannye/sezkp/internal/sezkp/logging"
	"github.com/logannye/sezkp/internal/sezkp/prover"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: sezkp-prover <prove|verify> [flags]")
	}
	switch os.Args[1] {
	case "prove":
		runProve(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	default:
		fatal(fmt.Sprintf("unknown subcommand %q (want prove or verify)", os.Args[1]))
	}
}

func runProve(args []string) {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	backendName := fs.String("backend", "fold", "backend to prove with: fold or stark")
	blocksPath := fs.String("blocks", "", "path to the sigma_k container (json/cbor/ndjson)")
	manifestPath := fs.String("manifest", "", "path to the manifest container (json/cbor)")
	streamPath := fs.String("stream", "", "if set (fold backend only), stream the wrap attestations to this path instead of a batch artifact")
	verbose := fs.Bool("v", false, "log debug diagnostics to stderr")
	fs.Parse(args)

	attachLogger(*verbose)

	blocks := mustReadBlocks(*blocksPath)
	manifestRoot := mustReadManifestRoot(*manifestPath)
	cfg := mustLoadConfig()

	var artifact core.ProofArtifact
	if *streamPath != "" {
		if *backendName != "fold" {
			fatal("--stream is only supported with --backend=fold")
		}
		out, err := os.Create(*streamPath)
		if err != nil {
			fatal(fmt.Sprintf("opening stream output: %v", err))
		}
		defer out.Close()

		artifact, err = prover.ProveStream(prover.NewSliceIterator(blocks), manifestRoot, cfg.DriverOptions(), out, *streamPath)
		if err != nil {
			fatal(fmt.Sprintf("proving stream: %v", err))
		}
	} else {
		backend := mustBackend(*backendName, cfg)
		var err error
		artifact, err = prover.Prove(backend, blocks, manifestRoot)
		if err != nil {
			fatal(fmt.Sprintf("proving: %v", err))
		}
	}

	if err := json.NewEncoder(os.Stdout).Encode(artifact); err != nil {
		fatal(fmt.Sprintf("encoding artifact: %v", err))
	}
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	backendName := fs.String("backend", "fold", "backend to verify with: fold or stark")
	blocksPath := fs.String("blocks", "", "path to the sigma_k container (json/cbor/ndjson)")
	manifestPath := fs.String("manifest", "", "path to the manifest container (json/cbor)")
	artifactPath := fs.String("artifact", "", "path to the proof artifact (json)")
	streamPath := fs.String("stream", "", "if set (fold backend only), verify the streamed wrap attestations at this path")
	verbose := fs.Bool("v", false, "log debug diagnostics to stderr")
	fs.Parse(args)

	attachLogger(*verbose)

	blocks := mustReadBlocks(*blocksPath)
	manifestRoot := mustReadManifestRoot(*manifestPath)

	artifactFile, err := os.Open(*artifactPath)
	if err != nil {
		fatal(fmt.Sprintf("opening artifact: %v", err))
	}
	defer artifactFile.Close()
	var artifact core.ProofArtifact
	if err := json.NewDecoder(artifactFile).Decode(&artifact); err != nil {
		fatal(fmt.Sprintf("decoding artifact: %v", err))
	}

	if *streamPath != "" {
		if *backendName != "fold" {
			fatal("--stream is only supported with --backend=fold")
		}
		in, err := os.Open(*streamPath)
		if err != nil {
			fatal(fmt.Sprintf("opening stream: %v", err))
		}
		defer in.Close()
		if err := prover.VerifyStream(prover.NewSliceIterator(blocks), artifact, manifestRoot, in); err != nil {
			fatal(fmt.Sprintf("verifying stream: %v", err))
		}
	} else {
		cfg := mustLoadConfig()
		backend := mustBackend(*backendName, cfg)
		if err := prover.Verify(backend, artifact, blocks, manifestRoot); err != nil {
			fatal(fmt.Sprintf("verifying: %v", err))
		}
	}

	fmt.Fprintln(os.Stderr, "sezkp-prover: OK")
}

func mustBackend(name string, cfg *config.Config) prover.Backend {
	switch name {
	case "fold":
		return prover.NewFoldBackend(cfg.DriverOptions())
	case "stark":
		return prover.StarkBackend{}
	default:
		fatal(fmt.Sprintf("unknown backend %q (want fold or stark)", name))
		return nil
	}
}

func mustLoadConfig() *config.Config {
	cfg, err := config.FromEnv()
	if err != nil {
		fatal(fmt.Sprintf("loading config: %v", err))
	}
	return cfg
}

func mustReadBlocks(path string) []*core.BlockSummary {
	if path == "" {
		fatal("--blocks is required")
	}
	format, err := container.DetectFormat(path)
	if err != nil {
		fatal(fmt.Sprintf("detecting blocks format: %v", err))
	}
	f, err := os.Open(path)
	if err != nil {
		fatal(fmt.Sprintf("opening blocks: %v", err))
	}
	defer f.Close()
	blocks, err := container.ReadBlocks(f, format)
	if err != nil {
		fatal(fmt.Sprintf("reading blocks: %v", err))
	}
	return blocks
}

func mustReadManifestRoot(path string) [32]byte {
	if path == "" {
		fatal("--manifest is required")
	}
	format, err := container.DetectFormat(path)
	if err != nil {
		fatal(fmt.Sprintf("detecting manifest format: %v", err))
	}
	f, err := os.Open(path)
	if err != nil {
		fatal(fmt.Sprintf("opening manifest: %v", err))
	}
	defer f.Close()
	m, err := container.ReadManifest(f, format)
	if err != nil {
		fatal(fmt.Sprintf("reading manifest: %v", err))
	}
	var root [32]byte
	copy(root[:], m.Root[:])
	return root
}

func attachLogger(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log := logging.New(os.Stderr, level)
	prover.SetLogger(log)
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, "sezkp-prover: ERROR:", msg)
	os.Exit(1)
}
