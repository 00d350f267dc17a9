package csrf

import (
	"crypto/hmac"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
)

// Separator joins identity components, the expiration and the signature.
const Separator = ":"

// MaxSignatureLength is the longest hex signature any supported algorithm
// produces (SHA-512 / BLAKE2b-512). Comparisons pad to this width.
const MaxSignatureLength = 128

// EncodeCertificate joins the identity components and then expireAt with
// Separator. A component containing Separator would make the certificate
// ambiguous, so it is rejected with ErrInvalidIdentity.
func EncodeCertificate(id Identity, expireAt int64) (string, error) {
	var b strings.Builder
	for _, part := range id {
		if strings.Contains(part, Separator) {
			return "", ErrInvalidIdentity
		}
		b.WriteString(part)
		b.WriteString(Separator)
	}
	b.WriteString(strconv.FormatInt(expireAt, 10))
	return b.String(), nil
}

// Sign computes the lowercase hex HMAC of certificate under secret using alg.
func Sign(certificate string, secret []byte, alg Algorithm) (string, error) {
	newHash, err := alg.hasher()
	if err != nil {
		return "", err
	}
	mac := hmac.New(newHash, secret)
	mac.Write([]byte(certificate))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// EncodeToken builds the wire token "expireAt:signature".
func EncodeToken(expireAt int64, signature string) string {
	return strconv.FormatInt(expireAt, 10) + Separator + signature
}

// DecodeToken splits a wire token into its expiration and signature.
// Exactly two parts are accepted and expireAt must be written exactly the way
// EncodeToken writes it; anything else is ErrMalformedToken.
func DecodeToken(token string) (int64, string, error) {
	if token == "" {
		return 0, "", ErrMalformedToken
	}
	parts := strings.Split(token, Separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, "", ErrMalformedToken
	}
	expireAt, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || strconv.FormatInt(expireAt, 10) != parts[0] {
		return 0, "", ErrMalformedToken
	}
	return expireAt, parts[1], nil
}

// VerifySignature reports whether actual equals expected. Both inputs are
// copied into MaxSignatureLength buffers so the comparison always touches the
// same number of bytes, and the length check is folded in without branching.
func VerifySignature(expected, actual string) bool {
	if len(expected) > MaxSignatureLength || len(actual) > MaxSignatureLength {
		return false
	}
	var e, a [MaxSignatureLength]byte
	copy(e[:], expected)
	copy(a[:], actual)
	sameLen := subtle.ConstantTimeEq(int32(len(expected)), int32(len(actual)))
	sameBytes := subtle.ConstantTimeCompare(e[:], a[:])
	return sameLen&sameBytes == 1
}

// extractClientToken reads the presented token. The header wins, then the
// body field (x-www-form-urlencoded or multipart). Query strings are ignored
// so tokens do not end up in logs or Referer headers.
func extractClientToken(r *http.Request, headerName, field string) string {
	if headerName != "" {
		if h := strings.TrimSpace(r.Header.Get(headerName)); h != "" {
			return h
		}
	}
	if field == "" || r.Body == nil || r.Body == http.NoBody {
		return ""
	}
	return r.PostFormValue(field)
}
