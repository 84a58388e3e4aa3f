package forms

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"mentorlink-cli/internal/binding"
)

const MaxImageBytes = 1 << 20

const (
	MsgImageMissing = "이미지 파일을 선택하세요."
	MsgImageType    = "jpg 또는 png 파일만 업로드 가능합니다."
	MsgImageSize    = "이미지 크기는 1MB 이하만 허용됩니다."
	MsgImageRead    = "이미지 파일을 읽을 수 없습니다."
)

type ImageFile struct {
	Path string
	MIME string
	Size int64
}

// InspectImage sniffs the content type and stats the size of a local file.
func InspectImage(path string) (ImageFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return ImageFile{}, binding.Invalid(MsgImageMissing)
	}
	st, err := os.Stat(path)
	if err != nil || st.IsDir() {
		return ImageFile{}, binding.Invalid(MsgImageRead)
	}
	f, err := os.Open(path)
	if err != nil {
		return ImageFile{}, binding.Invalid(MsgImageRead)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return ImageFile{}, binding.Invalid(MsgImageRead)
	}
	return ImageFile{Path: path, MIME: http.DetectContentType(head[:n]), Size: st.Size()}, nil
}

// ValidateImage allows jpeg and png up to MaxImageBytes.
func ValidateImage(f ImageFile) error {
	switch f.MIME {
	case "image/jpeg", "image/png":
	default:
		return binding.Invalid(MsgImageType)
	}
	if f.Size > MaxImageBytes {
		return binding.Invalid(MsgImageSize)
	}
	return nil
}
