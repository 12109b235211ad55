package classpath

import (
	"os"
	"os/exec"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// FindRTJar locates the runtime jar of a Java 8 or older JDK. The JDK is
// taken from javaHome, then $JAVA_HOME, then from the java binary on PATH,
// with symlinks resolved.
func FindRTJar(javaHome string) (string, error) {
	if javaHome == "" {
		javaHome = os.Getenv("JAVA_HOME")
	}
	if javaHome == "" {
		home, err := javaHomeFromPath()
		if err != nil {
			return "", err
		}
		javaHome = home
	}

	rt := filepath.Join(javaHome, "jre", "lib", "rt.jar")
	info, err := os.Stat(rt)
	if err != nil || !info.Mode().IsRegular() {
		return "", errors.Errorf("could not find rt.jar: %s is not a file", rt)
	}
	return rt, nil
}

// javaHomeFromPath maps <home>/bin/java to <home>
// by going up two directories from the resolved binary.
func javaHomeFromPath() (string, error) {
	java, err := exec.LookPath("java")
	if err != nil {
		return "", errors.Errorf("could not find 'java' binary in PATH: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(java)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", java, err)
	}
	return filepath.Clean(filepath.Join(filepath.Dir(resolved), "..", "..")), nil
}
