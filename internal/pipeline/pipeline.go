package pipeline

import (
	"strings"

	"encimg/internal/archive"
	"encimg/internal/classify"
	"encimg/internal/cryptoengine"
	"encimg/internal/imagecodec"
	"encimg/internal/log"
	"encimg/internal/securebuf"
	"encimg/internal/util"
	"encimg/internal/validate"
)

// memoryReservationFactor is the multiplier applied to an operation's
// input size when reserving from the secure buffer manager: plaintext,
// the encrypted block, and (for image operations) the Base64/PNG
// expansions all coexist during one operation (spec §4.6: "Reserve 3 ×
// totalSize").
const memoryReservationFactor = 3

// Orchestrator composes validation, archiving, the crypto engine, and the
// image codec into the four user-level operations. A zero-value
// Orchestrator is usable; if Manager is left nil, a new manager with
// securebuf.DefaultBudget is created on first use and kept for later calls.
type Orchestrator struct {
	Manager *securebuf.Manager
}

func (o *Orchestrator) manager() *securebuf.Manager {
	if o.Manager == nil {
		o.Manager = securebuf.NewManager(securebuf.DefaultBudget)
	}
	return o.Manager
}

// memoryLimitError wraps a denied reservation as a classify.MemoryError and
// triggers CleanupAll, since MEMORY_LIMIT is a critical-severity failure
// that must not leave any tracked buffer behind (spec §7).
func (o *Orchestrator) memoryLimitError(requested int64, cause error) error {
	budget := o.manager().MemoryUsage().Max
	log.Error("memory reservation denied", log.Int64("requested", requested), log.Int64("budget", budget))
	o.manager().CleanupAll()
	return &classify.MemoryError{Requested: requested, Budget: budget, Err: cause}
}

// FileInput is one file supplied to EncryptFiles.
type FileInput struct {
	Name     string
	MimeType string
	Data     []byte
}

// nowMillisFunc returns the current time in Unix milliseconds for
// archive/metadata timestamps. Exposed as a package variable so encrypt
// paths stay deterministic under test.
var nowMillisFunc = defaultNowMillis

// EncryptFiles validates each file, archives them when there is more than
// one, reserves memory, and produces an encrypted envelope. Callers decide
// separately whether to wrap the result as Base64 and/or a PNG.
func (o *Orchestrator) EncryptFiles(files []FileInput, password string, reporter ProgressReporter) ([]byte, error) {
	r := orDefault(reporter)
	log.Debug("encrypt_files started", log.Int("fileCount", len(files)))
	report(r, PhaseValidating, 0)

	if res := validate.Password(password); !res.Valid {
		return nil, classify.NewValidationError("password", res.Code, res.Message)
	}

	var totalSize int64
	for _, f := range files {
		totalSize += int64(len(f.Data))
		fi := &validate.FileInput{Name: f.Name, Mime: f.MimeType, Size: int64(len(f.Data))}
		if res := validate.FileForEncryption(fi); !res.Valid {
			return nil, classify.NewValidationError("file", res.Code, res.Message)
		}
	}
	if len(files) > 1 {
		if res := validate.MultiFileTotal(totalSize); !res.Valid {
			return nil, classify.NewValidationError("files", res.Code, res.Message)
		}
	}
	report(r, PhaseValidating, 100)

	opID := "encrypt-files"
	if err := o.manager().Reserve(opID, totalSize*memoryReservationFactor); err != nil {
		return nil, o.memoryLimitError(totalSize*memoryReservationFactor, err)
	}
	defer o.manager().Release(opID)

	if r.IsCancelled() {
		return nil, classify.ErrCancelled
	}

	var payload []byte
	meta := cryptoengine.FileMetadata{Timestamp: nowMillisFunc()}
	if len(files) == 1 {
		payload = files[0].Data
		meta.Filename = files[0].Name
		meta.MimeType = files[0].MimeType
	} else {
		report(r, PhaseArchiving, 0)
		entries := make([]archive.Entry, len(files))
		for i, f := range files {
			entries[i] = archive.Entry{Name: f.Name, MimeType: f.MimeType, Data: f.Data}
		}
		packed, archiveMeta, err := archive.Pack(entries, meta.Timestamp)
		if err != nil {
			return nil, err
		}
		payload = packed
		meta = archiveMeta
		report(r, PhaseArchiving, 100)
	}

	report(r, PhaseEncrypting, 0)
	handle := o.manager().Adopt(payload)
	defer handle.Release()

	envelope, err := cryptoengine.Encrypt(handle.Bytes(), password, meta)
	if err != nil {
		log.Warn("encrypt_files failed", log.Err(err))
		return nil, err
	}
	report(r, PhaseEncrypting, 100)
	log.Info("encrypt_files completed", log.Int("envelopeSize", len(envelope)))

	return envelope, nil
}

// EncryptText encrypts a plain-text payload under a fixed filename and
// MIME type, bypassing the archive and multi-file size checks.
func (o *Orchestrator) EncryptText(text string, password string, reporter ProgressReporter) ([]byte, error) {
	r := orDefault(reporter)
	report(r, PhaseValidating, 0)

	if res := validate.Password(password); !res.Valid {
		return nil, classify.NewValidationError("password", res.Code, res.Message)
	}
	data := []byte(text)
	if res := validate.FileForEncryption(&validate.FileInput{Size: int64(len(data))}); !res.Valid {
		return nil, classify.NewValidationError("text", res.Code, res.Message)
	}
	report(r, PhaseValidating, 100)

	opID := "encrypt-text"
	reserveSize := int64(len(data)) * memoryReservationFactor
	if err := o.manager().Reserve(opID, reserveSize); err != nil {
		return nil, o.memoryLimitError(reserveSize, err)
	}
	defer o.manager().Release(opID)

	report(r, PhaseEncrypting, 0)
	meta := cryptoengine.FileMetadata{Filename: "encrypted_text.txt", MimeType: "text/plain", Timestamp: nowMillisFunc()}
	envelope, err := cryptoengine.Encrypt(data, password, meta)
	if err != nil {
		return nil, err
	}
	report(r, PhaseEncrypting, 100)

	return envelope, nil
}

// DecryptResult is the outcome of decrypting an envelope.
type DecryptResult struct {
	Data      []byte
	Metadata  cryptoengine.FileMetadata
	IsArchive bool
	Entries   []archive.Entry // populated only when IsArchive
}

// DecryptEnvelope validates the envelope header, decrypts via the crypto
// engine, and determines whether the recovered bytes are a multi-file
// archive, unpacking them if so.
func (o *Orchestrator) DecryptEnvelope(envelope []byte, password string, reporter ProgressReporter) (DecryptResult, error) {
	r := orDefault(reporter)
	report(r, PhaseValidating, 0)
	if res := validate.EnvelopeHeader(envelope); !res.Valid {
		return DecryptResult{}, classify.NewValidationError("envelope", res.Code, res.Message)
	}
	if res := validate.Password(password); !res.Valid {
		return DecryptResult{}, classify.NewValidationError("password", res.Code, res.Message)
	}
	report(r, PhaseValidating, 100)

	opID := "decrypt-envelope"
	reserveSize := int64(len(envelope)) * memoryReservationFactor
	if err := o.manager().Reserve(opID, reserveSize); err != nil {
		return DecryptResult{}, o.memoryLimitError(reserveSize, err)
	}
	defer o.manager().Release(opID)

	report(r, PhaseDecrypting, 0)
	data, meta, err := cryptoengine.Decrypt(envelope, password)
	if err != nil {
		log.Warn("decrypt_envelope failed", log.Err(err))
		return DecryptResult{}, err
	}
	handle := o.manager().Adopt(data)
	defer handle.Release()
	report(r, PhaseDecrypting, 100)

	isArchive := strings.HasSuffix(meta.Filename, ".farc") ||
		meta.MimeType == "application/x-file-archive" ||
		archive.LooksLikeArchive(handle.Bytes())

	result := DecryptResult{Metadata: meta, IsArchive: isArchive}
	result.Data = append([]byte(nil), handle.Bytes()...)

	if isArchive {
		report(r, PhaseUnarchiving, 0)
		entries, err := archive.Unpack(handle.Bytes())
		if err != nil {
			return DecryptResult{}, err
		}
		copied := make([]archive.Entry, len(entries))
		for i, e := range entries {
			copied[i] = archive.Entry{Name: e.Name, MimeType: e.MimeType, Data: append([]byte(nil), e.Data...)}
		}
		result.Entries = copied
		report(r, PhaseUnarchiving, 100)
	}

	return result, nil
}

// DecryptImage decodes a PNG carrier to its embedded Base64 string, then
// to an envelope, then delegates to DecryptEnvelope.
func (o *Orchestrator) DecryptImage(png []byte, password string, reporter ProgressReporter) (DecryptResult, error) {
	r := orDefault(reporter)
	report(r, PhaseDecoding, 0)
	b64, err := imagecodec.Decode(png)
	if err != nil {
		return DecryptResult{}, err
	}
	report(r, PhaseDecoding, 100)
	return o.DecryptBase64(b64, password, r)
}

// DecryptBase64 decodes a Base64 string to an envelope, then delegates to
// DecryptEnvelope.
func (o *Orchestrator) DecryptBase64(text string, password string, reporter ProgressReporter) (DecryptResult, error) {
	r := orDefault(reporter)
	if res := validate.Base64(text); !res.Valid {
		return DecryptResult{}, classify.NewValidationError("base64", res.Code, res.Message)
	}
	envelope, err := base64Decode(text)
	if err != nil {
		return DecryptResult{}, err
	}
	return o.DecryptEnvelope(envelope, password, r)
}

// EncodeBase64 wraps an envelope as a Base64 string.
func EncodeBase64(envelope []byte) string {
	return base64Encode(envelope)
}

// EncodeImage renders an envelope's Base64 form as a PNG carrier.
func EncodeImage(envelope []byte, reporter ProgressReporter) ([]byte, error) {
	r := orDefault(reporter)
	report(r, PhaseBase64Encode, 0)
	b64 := base64Encode(envelope)
	report(r, PhaseBase64Encode, 100)

	report(r, PhaseRendering, 0)
	png, err := imagecodec.Encode(b64)
	if err != nil {
		return nil, err
	}
	report(r, PhaseRendering, 100)
	return png, nil
}

// EstimateTime returns a rough processing-time estimate for an input of
// size bytes, at roughly 1 MiB/s for AEAD plus image codec work on
// commodity hardware (spec §5).
func EstimateTime(size int64) (seconds float64) {
	const bytesPerSecond = 1 * util.MiB
	return float64(size) / float64(bytesPerSecond)
}
