package documents

import (
	"encoding/base64"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/cloudfoundry/bytefmt"

	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/rest/api"
	"github.com/kataras/iris"
)

// maxUploadSize bounds notice/advice uploads at 10MB.
const maxUploadSize = 10 * 1024 * 1024

// Upload accepts a PDF document and returns its base64 payload for
// the extraction endpoints. Nothing is persisted.
func Upload(ctx api.Context) {
	file, header, err := ctx.FormFile("file")
	if err != nil {
		ctx.RespondError(lcerrors.InvalidRequestParam.WithMsg("no file provided").WithError(err))
		return
	}
	defer file.Close()

	if !strings.Contains(header.Header.Get("Content-Type"), "pdf") {
		ctx.RespondError(lcerrors.InvalidRequestParam.WithMsg("only PDF files are accepted"))
		return
	}

	if header.Size > maxUploadSize {
		ctx.RespondError(lcerrors.InvalidRequestParam.WithMsg(fmt.Sprintf(
			"file size must be under %v, got %v",
			bytefmt.ByteSize(maxUploadSize),
			bytefmt.ByteSize(uint64(header.Size)),
		)))
		return
	}

	buf, err := ioutil.ReadAll(file)
	if err != nil {
		ctx.RespondError(lcerrors.InternalServerError.WithError(err))
		return
	}

	ctx.Respond(iris.Map{
		"filename":  header.Filename,
		"size":      header.Size,
		"base64":    base64.StdEncoding.EncodeToString(buf),
		"mime_type": header.Header.Get("Content-Type"),
	})
}
