// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cryptojs implements the passphrase mode of CryptoJS AES:
// base64("Salted__" | salt | AES-256-CBC(PKCS#7)) with key and iv
// derived by OpenSSL EVP_BytesToKey over MD5.
package cryptojs

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	saltLen = 8
	keyLen  = 32
	magic   = "Salted__"
)

var (
	ErrEmptyPassphrase = errors.New("cryptojs: empty passphrase")
	ErrMalformed       = errors.New("cryptojs: malformed ciphertext")
	ErrPadding         = errors.New("cryptojs: bad padding")
)

// Encrypt returns the CryptoJS string form of plaintext under passphrase
func Encrypt(plaintext, passphrase string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptojs: salt: %w", err)
	}
	return encryptWithSalt([]byte(plaintext), passphrase, salt)
}

func encryptWithSalt(plaintext []byte, passphrase string, salt []byte) (string, error) {
	if passphrase == "" {
		return "", ErrEmptyPassphrase
	}
	key, iv := deriveKeyIV([]byte(passphrase), salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("cryptojs: %w", err)
	}

	padded := pad(plaintext, aes.BlockSize)
	out := make([]byte, len(magic)+saltLen+len(padded))
	copy(out, magic)
	copy(out[len(magic):], salt)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(magic)+saltLen:], padded)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. The result may be empty when the
// passphrase is wrong but the padding happens to be valid.
func Decrypt(ciphertext, passphrase string) (string, error) {
	if passphrase == "" {
		return "", ErrEmptyPassphrase
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	header := len(magic) + saltLen
	if len(raw) < header+aes.BlockSize || !bytes.HasPrefix(raw, []byte(magic)) || (len(raw)-header)%aes.BlockSize != 0 {
		return "", ErrMalformed
	}

	key, iv := deriveKeyIV([]byte(passphrase), raw[len(magic):header])
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("cryptojs: %w", err)
	}
	plain := make([]byte, len(raw)-header)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, raw[header:])

	plain, err = unpad(plain, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// deriveKeyIV is EVP_BytesToKey with MD5 and one iteration
func deriveKeyIV(passphrase, salt []byte) (key, iv []byte) {
	var derived, prev []byte
	for len(derived) < keyLen+aes.BlockSize {
		h := md5.New()
		h.Write(prev)
		h.Write(passphrase)
		h.Write(salt)
		prev = h.Sum(nil)
		derived = append(derived, prev...)
	}
	return derived[:keyLen], derived[keyLen : keyLen+aes.BlockSize]
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(bytes.Clone(b), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, ErrPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, ErrPadding
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, ErrPadding
		}
	}
	return b[:len(b)-n], nil
}
