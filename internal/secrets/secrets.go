// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: aws-access-key-id, aws-secret-access-key, aws-region.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// awsEnvNames maps secret file names to the environment variables the AWS
// SDK's default credential chain reads.
var awsEnvNames = map[string]string{
	"aws-access-key-id":     "AWS_ACCESS_KEY_ID",
	"aws-secret-access-key": "AWS_SECRET_ACCESS_KEY",
	"aws-region":            "AWS_REGION",
}

// ExportAWS publishes AWS credentials from loaded secrets into the
// environment. Values already present in the environment win.
func ExportAWS(secrets map[string]string) {
	for file, env := range awsEnvNames {
		if v, ok := secrets[file]; ok && os.Getenv(env) == "" {
			os.Setenv(env, v)
		}
	}
}
