package types

import "mime/multipart"

type UploadFile struct {
	File   multipart.File
	Header *multipart.FileHeader
	Path   string
}

type UploadFilesRes struct {
	ObjectKey   string
	FileName    string
	FileBytes   []byte
	ContentType string
}
