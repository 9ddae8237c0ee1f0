package connect

import (
	"errors"
	"io/fs"
	"os"

	"golang.org/x/crypto/ssh"
)

// KeyInfo describes a private key file.
type KeyInfo struct {
	Type        string // e.g. "ssh-rsa"; empty when Encrypted
	Fingerprint string // SHA256 fingerprint; empty when Encrypted
	Encrypted   bool
	Mode        fs.FileMode
}

// Inspect reads a private key and reports its type and fingerprint.
// A passphrase-protected key is not an error; it is reported as Encrypted.
func Inspect(path string) (KeyInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return KeyInfo{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return KeyInfo{}, err
	}

	info := KeyInfo{Mode: st.Mode().Perm()}

	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			info.Encrypted = true
			return info, nil
		}
		return KeyInfo{}, err
	}

	info.Type = signer.PublicKey().Type()
	info.Fingerprint = ssh.FingerprintSHA256(signer.PublicKey())
	return info, nil
}
