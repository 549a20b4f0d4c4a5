package dictionary

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	jmdictRepoOwner = "scriptin"
	jmdictRepoName  = "jmdict-simplified"
	// jmdictAssetPrefix identifies the English-common JMdict-simplified
	// dump among a release's assets; other language/scope variants
	// (jmdict-eng, jmdict-all, ...) are published alongside it and must
	// be skipped.
	jmdictAssetPrefix = "jmdict-eng-common"
)

// EnsureDictionary makes sure a JMdict-simplified dump sits at path, ready
// for Importer/LoadJMdictSimplified to read the kanji→reading entries
// pkg/ingest resolves lyric readings against. If path doesn't already
// exist it resolves the latest jmdict-simplified GitHub release and
// downloads its English-common asset there.
func EnsureDictionary(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	fmt.Printf("Dictionary not found at %s. Attempting auto-download...\n", path)

	assetURL, err := latestEngCommonAssetURL(ctx)
	if err != nil {
		return fmt.Errorf("find latest jmdict-simplified release: %w", err)
	}

	fmt.Printf("Downloading from %s...\n", assetURL)
	return fetchAndExtractJSON(ctx, assetURL, path)
}

// latestEngCommonAssetURL asks the GitHub releases API for jmdict-
// simplified's latest release and returns the download URL of its
// English-common asset.
func latestEngCommonAssetURL(ctx context.Context) (string, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", jmdictRepoOwner, jmdictRepoName)
	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "mojiuchi-cli")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github api returned status: %s", resp.Status)
	}

	var release struct {
		Assets []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	for _, asset := range release.Assets {
		if !strings.Contains(asset.Name, jmdictAssetPrefix) {
			continue
		}
		if strings.HasSuffix(asset.Name, ".json.tgz") || strings.HasSuffix(asset.Name, ".json.gz") {
			return asset.BrowserDownloadURL, nil
		}
	}
	return "", fmt.Errorf("no %s asset found in latest jmdict-simplified release", jmdictAssetPrefix)
}

// fetchAndExtractJSON downloads the tar.gz archive at url and writes its
// single .json member to destPath.
func fetchAndExtractJSON(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	// jmdict-simplified's common-English dump runs tens of megabytes
	// compressed; give the transfer plenty of room to finish.
	client := &http.Client{Timeout: 30 * time.Minute}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	gzReader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return fmt.Errorf("open gzip stream: %w", err)
	}
	defer gzReader.Close()

	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return fmt.Errorf("no json file found in downloaded archive")
		}
		if err != nil {
			return fmt.Errorf("read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg || !strings.HasSuffix(header.Name, ".json") {
			continue
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			return fmt.Errorf("create dictionary file: %w", err)
		}
		defer outFile.Close()

		if _, err := io.Copy(outFile, tarReader); err != nil {
			return fmt.Errorf("write dictionary file: %w", err)
		}
		return nil
	}
}
