// vals.go - secret references in the environment, resolved with helmfile/vals
//
// Any variable whose value starts with "ref+" is replaced by what vals
// resolves it to, before ardanlabs/conf reads the environment:
//
//	NATS_TOKEN=ref+echo://dev-token            → "dev-token" (tests)
//	NATS_TOKEN=ref+file://./secrets/token      → file contents
//	NATS_TOKEN=ref+vault://secret/nats#token   → Vault
//	NATS_TOKEN=ref+awssecrets://prod/nats#token

package env

import (
	"fmt"
	"os"
	"strings"

	"github.com/helmfile/vals"
)

const refPrefix = "ref+"

// ResolveEnvSecrets resolves every ref+ environment variable in place.
// Call it before any config is read.
func ResolveEnvSecrets() error {
	return ResolveEnvSecretsWithOptions(vals.Options{})
}

// ResolveEnvSecretsWithOptions is ResolveEnvSecrets with custom vals options
// (caching, logging, AWS settings).
func ResolveEnvSecretsWithOptions(opts vals.Options) error {
	refs := secretRefs()
	if len(refs) == 0 {
		return nil
	}

	runtime, err := vals.New(opts)
	if err != nil {
		return fmt.Errorf("creating vals runtime: %w", err)
	}

	resolved, err := runtime.Eval(refs)
	if err != nil {
		return fmt.Errorf("resolving secrets: %w", err)
	}

	for key, value := range resolved {
		if err := os.Setenv(key, fmt.Sprint(value)); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}
	return nil
}

// ListSecretRefs returns the names of environment variables holding a ref+ value.
func ListSecretRefs() []string {
	refs := secretRefs()
	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	return names
}

func secretRefs() map[string]interface{} {
	refs := make(map[string]interface{})
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(value, refPrefix) {
			refs[key] = value
		}
	}
	return refs
}

// ResolveString resolves a single value if it has a ref+ prefix and
// returns it unchanged otherwise.
func ResolveString(value string) (string, error) {
	if !strings.HasPrefix(value, refPrefix) {
		return value, nil
	}

	runtime, err := vals.New(vals.Options{})
	if err != nil {
		return "", fmt.Errorf("creating vals runtime: %w", err)
	}

	resolved, err := runtime.Eval(map[string]interface{}{"value": value})
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", value, err)
	}
	return fmt.Sprint(resolved["value"]), nil
}
