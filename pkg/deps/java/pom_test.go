package java

import (
	"reflect"
	"testing"

	"github.com/matzehuels/repolens/pkg/deps"
)

func TestPOM_Extract(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<project>
  <groupId>com.example</groupId>
  <artifactId>app</artifactId>
  <version>1.0.0</version>
  <dependencies>
    <dependency>
      <groupId>org.springframework.boot</groupId>
      <artifactId>spring-boot-starter-web</artifactId>
      <version>${spring.version}</version>
      <exclusions>
        <exclusion>
          <groupId>org.slf4j</groupId>
          <artifactId>slf4j-simple</artifactId>
        </exclusion>
      </exclusions>
    </dependency>
    <dependency>
      <artifactId>junit-jupiter</artifactId>
      <groupId>org.junit.jupiter</groupId>
      <scope>test</scope>
    </dependency>
    <dependency>
      <groupId>jakarta.servlet</groupId>
      <artifactId>jakarta.servlet-api</artifactId>
      <version>6.0.0</version>
      <scope>provided</scope>
    </dependency>
    <dependency>
      <groupId>com.h2database</groupId>
      <artifactId>h2</artifactId>
      <optional>true</optional>
    </dependency>
    <dependency>
      <groupId> </groupId>
      <artifactId>orphan</artifactId>
    </dependency>
  </dependencies>
</project>`
	got, err := POM{}.Extract(content)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []deps.Dependency{
		{Name: "org.springframework.boot:spring-boot-starter-web", Version: "${spring.version}", Type: deps.Production},
		{Name: "org.junit.jupiter:junit-jupiter", Type: deps.Dev},
		{Name: "jakarta.servlet:jakarta.servlet-api", Version: "6.0.0", Type: deps.Dev},
		{Name: "com.h2database:h2", Type: deps.Optional},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract =\n%v\nwant\n%v", got, want)
	}
}

func TestPOM_Truncated(t *testing.T) {
	content := `<project><dependencies>
<dependency><groupId>a</groupId><artifactId>b</artifactId><version>1</version></dependency>
<dependency><groupId>c</groupId><artifactId>`
	got, err := POM{}.Extract(content)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []deps.Dependency{{Name: "a:b", Version: "1", Type: deps.Production}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestPOM_NotXML(t *testing.T) {
	got, err := POM{}.Extract("this is not xml")
	if err != nil || len(got) != 0 {
		t.Errorf("Extract = %v, %v, want empty and nil", got, err)
	}
}
