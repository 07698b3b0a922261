package messages

import "encoding/xml"

// CrackHashRequest asks a worker to recover the preimage of Hash.
// Zero MaxLength, empty Alphabet or empty Strategy mean the worker's defaults.
type CrackHashRequest struct {
	XMLName   xml.Name `xml:"CrackHashRequest" bson:"-"`
	RequestId string   `xml:"RequestId" bson:"request_id"`
	Hash      string   `xml:"Hash" bson:"hash"`
	MaxLength int      `xml:"MaxLength,omitempty" bson:"max_length"`
	Alphabet  Alphabet `xml:"Alphabet" bson:"alphabet"`
	Strategy  string   `xml:"Strategy,omitempty" bson:"strategy"`
}

type Alphabet struct {
	Symbols []string `xml:"symbols" bson:"symbols"`
}

type CrackHashResponse struct {
	XMLName   xml.Name `xml:"CrackHashResponse" bson:"-"`
	Id        string   `xml:"Id" bson:"_id"`
	RequestId string   `xml:"RequestId" bson:"request_id"`
	Hash      string   `xml:"Hash" bson:"hash"`
	Found     bool     `xml:"Found" bson:"found"`
	Plaintext string   `xml:"Plaintext,omitempty" bson:"plaintext"`
	Error     string   `xml:"Error,omitempty" bson:"error"`
}
